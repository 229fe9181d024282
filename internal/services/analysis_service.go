// Package services orchestrates the analysis flow between the transport
// layer and the core engine: dataset building, metrics computation, and the
// optional narrative round trip.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"golfsight/internal/analysis"
	"golfsight/internal/config"
	"golfsight/internal/dataprocessing"
	apierrors "golfsight/internal/errors"
	"golfsight/internal/narrative"
	"golfsight/pkg/contracts/domain"
)

// Options are the per-request engine overrides. Zero values fall back to the
// configured defaults.
type Options struct {
	SkillField    string  `json:"skill_field,omitempty"`
	ScoreStat     string  `json:"score_stat,omitempty"`
	BucketWidth   float64 `json:"bucket_width,omitempty" validate:"omitempty,gt=0"`
	WithNarrative bool    `json:"with_narrative,omitempty"`
}

// AnalysisResult pairs the metrics report with the optional generated
// narrative.
type AnalysisResult struct {
	Report    domain.MetricsReport `json:"report"`
	Narrative string               `json:"narrative,omitempty"`
}

// AnalysisService runs analyses. It is stateless across requests: every call
// builds its own engine from explicit parameters and owns its dataset for
// the duration of the call only.
type AnalysisService struct {
	defaults  config.AnalysisConfig
	generator narrative.Generator
	logger    *slog.Logger
}

// NewAnalysisService creates the service. generator may be nil, which
// disables narrative generation.
func NewAnalysisService(defaults config.AnalysisConfig, generator narrative.Generator, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		defaults:  defaults,
		generator: generator,
		logger:    logger,
	}
}

// AnalyzeTable validates and builds the dataset from a raw table, then runs
// the analysis for one player.
func (s *AnalysisService) AnalyzeTable(ctx context.Context, table domain.Table, playerID string, opts Options) (*AnalysisResult, error) {
	ds, err := dataprocessing.BuildDataset(table)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeDataset(ctx, ds, playerID, opts)
}

// AnalyzeDataset runs the analysis for one player of an already-built
// dataset.
func (s *AnalysisService) AnalyzeDataset(ctx context.Context, ds domain.Dataset, playerID string, opts Options) (*AnalysisResult, error) {
	engine := analysis.NewEngine(s.engineParams(opts), s.logger)

	report, err := engine.Analyze(ctx, ds, playerID)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{Report: report}
	if opts.WithNarrative {
		if s.generator == nil {
			return nil, apierrors.ErrNarrativeUnavailable
		}
		prose, err := s.generator.Generate(ctx, narrative.BuildPrompt(report))
		if err != nil {
			// The report itself computed fine; only the external generator
			// is down. Surface that as a 503, not an internal failure.
			s.logger.WarnContext(ctx, "narrative generation failed",
				"player", playerID,
				"error", err.Error(),
			)
			return nil, apierrors.NewWithDetails(
				http.StatusServiceUnavailable, "NARRATIVE_UNAVAILABLE",
				"Narrative generator is unavailable", err.Error())
		}
		result.Narrative = prose
	}
	return result, nil
}

// AnalyzeAll runs the analysis for every player in the dataset concurrently.
// Each player's analysis is pure and independent, so the batch is safe to
// parallelize; results come back in dataset order regardless of completion
// order. Narrative generation is not batched.
func (s *AnalysisService) AnalyzeAll(ctx context.Context, ds domain.Dataset, opts Options) (map[string]*AnalysisResult, error) {
	opts.WithNarrative = false

	var mu sync.Mutex
	results := make(map[string]*AnalysisResult, len(ds.Players))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range ds.PlayerIDs() {
		g.Go(func() error {
			res, err := s.AnalyzeDataset(gctx, ds, id, opts)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", id, err)
			}
			mu.Lock()
			results[id] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PlayerList resolves a table far enough to list the selectable players.
func (s *AnalysisService) PlayerList(table domain.Table) ([]string, error) {
	ds, err := dataprocessing.BuildDataset(table)
	if err != nil {
		return nil, err
	}
	ids := ds.PlayerIDs()
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return sorted, nil
}

// engineParams merges request overrides over configured defaults.
func (s *AnalysisService) engineParams(opts Options) analysis.Params {
	params := analysis.Params{
		SkillField:  s.defaults.SkillField,
		ScoreStat:   s.defaults.ScoreStat,
		BucketWidth: s.defaults.BucketWidth,
		SegmentRule: segmentRule(s.defaults.MorningCutoffHr),
	}
	if opts.SkillField != "" {
		params.SkillField = opts.SkillField
	}
	if opts.ScoreStat != "" {
		params.ScoreStat = opts.ScoreStat
	}
	if opts.BucketWidth > 0 {
		params.BucketWidth = opts.BucketWidth
	}
	return params
}

// segmentRule builds the two-segment morning/afternoon rule from the
// configured cutoff hour, falling back to the engine default when the hour
// is out of range.
func segmentRule(cutoffHour int) analysis.SegmentRule {
	if cutoffHour <= 0 || cutoffHour >= 24 {
		return analysis.DefaultSegmentRule()
	}
	return analysis.SegmentRule{
		{Label: "morning", Start: 0},
		{Label: "afternoon", Start: cutoffHour * 60},
	}
}
