package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golfsight/pkg/contracts/domain"
)

// Params holds the explicit per-call configuration of the engine. The engine
// never reads process-wide state; everything that shapes a result arrives
// here.
type Params struct {
	// SkillField names the skill-index statistic used for peer grouping.
	// Empty means resolve by heuristic (first stat containing "handicap").
	SkillField string

	// ScoreStat names the scoring statistic used for time-of-day and peer
	// comparison context. Empty means resolve by heuristic (first stat
	// containing "score").
	ScoreStat string

	// BucketWidth is the skill-index bucket width; zero means
	// DefaultBucketWidth.
	BucketWidth float64

	// SegmentRule is the time-of-day segmentation; nil means
	// DefaultSegmentRule.
	SegmentRule SegmentRule
}

// Engine runs one full analysis: overall field comparison, peer grouping,
// time-of-day split, hole breakdown, and report assembly. It is stateless
// across calls; a Dataset goes in, a MetricsReport comes out, and nothing is
// retained.
type Engine struct {
	params Params
	logger *slog.Logger
}

// NewEngine creates an engine with the given parameters, applying defaults
// for any zero field.
func NewEngine(params Params, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if params.BucketWidth == 0 {
		params.BucketWidth = DefaultBucketWidth
	}
	if params.SegmentRule == nil {
		params.SegmentRule = DefaultSegmentRule()
	}
	return &Engine{params: params, logger: logger}
}

// Analyze computes the complete MetricsReport for one player.
//
// Validation and grouping errors (unknown player, missing skill index,
// inconsistent hole data) surface immediately; they indicate a data-quality
// problem to fix upstream. Statistically degenerate comparisons (a lone
// player in a bucket, a segment without rounds, a statistic with too few
// values) degrade to explicit markers inside the report instead of failing
// the analysis.
func (e *Engine) Analyze(ctx context.Context, ds domain.Dataset, playerID string) (domain.MetricsReport, error) {
	start := time.Now()

	e.logger.InfoContext(ctx, "starting analysis",
		"player", playerID,
		"players", len(ds.Players),
		"stats", len(ds.Schema.Stats),
	)

	overall, err := ComputeOverall(ds, playerID)
	if err != nil {
		return domain.MetricsReport{}, err
	}

	skillField, ok := resolveStat(ds.Schema, e.params.SkillField, "handicap")
	if !ok {
		missing := e.params.SkillField
		if missing == "" {
			missing = "handicap"
		}
		return domain.MetricsReport{}, &MissingFieldError{Field: missing}
	}

	groups, err := BuildPeerGroups(ds, skillField, e.params.BucketWidth)
	if err != nil {
		return domain.MetricsReport{}, err
	}

	player, _ := ds.Player(playerID)
	group, inGroup := GroupFor(groups, player, skillField, e.params.BucketWidth)

	var peers domain.PeerComparison
	if !inGroup {
		// The player carries no skill-index value, so no bucket contains
		// them; the comparison is a reportable gap, not a failure.
		peers = domain.PeerComparison{PlayerID: playerID, InsufficientPeers: true}
		e.logger.WarnContext(ctx, "player has no skill index value, skipping peer comparison",
			"player", playerID,
			"field", skillField,
		)
	} else {
		peers, err = ComparePlayerToPeers(ds.Schema, player, group)
		if err != nil {
			var empty *EmptyGroupError
			if !errors.As(err, &empty) {
				return domain.MetricsReport{}, err
			}
			// A lone player in their bucket is a reportable gap too.
			peers.InsufficientPeers = true
			e.logger.WarnContext(ctx, "no peers in skill bucket",
				"player", playerID,
				"group", peers.GroupRange,
			)
		}
	}

	timeSegments := domain.TimeSegmentMetrics{PlayerID: playerID}
	if scoreStat, ok := resolveStat(ds.Schema, e.params.ScoreStat, "score"); ok {
		timeSegments, err = ComputeTimeSegments(ds, playerID, e.params.SegmentRule, scoreStat)
		if err != nil {
			return domain.MetricsReport{}, err
		}
	} else {
		e.logger.WarnContext(ctx, "no scoring statistic in schema, skipping time segments",
			"player", playerID,
		)
	}

	holes, err := BuildHoleBreakdown(ds, playerID, group)
	if err != nil {
		return domain.MetricsReport{}, err
	}

	report := Assemble(overall, timeSegments, peers, holes)

	e.logger.InfoContext(ctx, "analysis completed",
		"player", playerID,
		"duration", time.Since(start),
		"partial", report.Partial,
		"gaps", len(report.Gaps),
	)
	return report, nil
}

// resolveStat resolves a statistic name against the schema. An explicit name
// matches case-insensitively; an empty name falls back to the first statistic
// whose header contains the heuristic substring.
func resolveStat(schema domain.Schema, explicit, heuristic string) (string, bool) {
	if explicit != "" {
		for _, s := range schema.Stats {
			if strings.EqualFold(s, explicit) {
				return s, true
			}
		}
		return "", false
	}
	for _, s := range schema.Stats {
		if strings.Contains(strings.ToLower(s), heuristic) {
			return s, true
		}
	}
	return "", false
}
