package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfsight/pkg/contracts/domain"
)

func promptReport() domain.MetricsReport {
	v := 78.0
	return domain.MetricsReport{
		PlayerID: "P1",
		Overall: domain.OverallMetrics{
			PlayerID: "P1",
			Stats: []domain.StatComparison{
				{
					Name:                "Avg Score",
					PlayerValue:         &v,
					FieldMeanExclPlayer: 82,
					Delta:               -4,
					Percentile:          0,
					SampleSize:          5,
				},
				{Name: "Putts", InsufficientData: true},
			},
		},
		TimeSegments: domain.TimeSegmentMetrics{
			PlayerID:  "P1",
			ScoreStat: "Avg Score",
			Segments: []domain.SegmentMetrics{
				{Label: "morning", PlayerAvailable: true, PlayerAvg: 78, PlayerRounds: 1, FieldAvailable: true, FieldAvg: 80, FieldRounds: 2},
				{Label: "afternoon", FieldAvailable: true, FieldAvg: 83, FieldRounds: 2},
			},
			OptimalWindow: "morning",
		},
		Peers: domain.PeerComparison{
			PlayerID:   "P1",
			GroupRange: "5-9",
			GroupSize:  2,
			Stats: []domain.PeerStatDelta{
				{Name: "Avg Score", PeerMean: 82, Delta: -4},
			},
		},
		Holes: []domain.HoleStat{
			{Hole: 1, Par: 4, PlayerScore: 4, VsPar: 0, PeerAvailable: true, PeerAvg: 4.5, FieldAvg: 4.75},
		},
		TotalParDelta:  0,
		HolesAvailable: true,
		Partial:        true,
		Gaps:           []string{`overall: insufficient data for "Putts"`},
	}
}

// TestBuildPrompt tests the fixed section rendering
func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(promptReport())

	t.Run("all six sections in order", func(t *testing.T) {
		sections := []string{
			"## Overall Performance Metrics",
			"## Time of Day Performance Analysis",
			"## Technical Handicap Analysis",
			"## Hole-by-Hole Statistical Breakdown",
			"## Key Performance Insights",
			"## Professional Development Recommendations",
		}
		last := -1
		for _, s := range sections {
			idx := strings.Index(prompt, s)
			require.GreaterOrEqual(t, idx, 0, "section %q missing", s)
			assert.Greater(t, idx, last, "section %q out of order", s)
			last = idx
		}
	})

	t.Run("values rendered from the report", func(t *testing.T) {
		assert.Contains(t, prompt, "Performance analysis for player P1")
		assert.Contains(t, prompt, "Avg Score: 78.00")
		assert.Contains(t, prompt, "delta -4.00")
		assert.Contains(t, prompt, "handicap range 5-9, 2 player(s)")
		assert.Contains(t, prompt, "Hole 1 (par 4): score 4 (+0), peer avg 4.50, field avg 4.75")
	})

	t.Run("unavailable markers, never invented numbers", func(t *testing.T) {
		assert.Contains(t, prompt, "Putts: unavailable (insufficient data)")
		assert.Contains(t, prompt, "afternoon (Avg Score): player unavailable")
		assert.Contains(t, prompt, "Player delta between segments: unavailable")
		assert.Contains(t, prompt, "Handicap trend: unavailable")
	})

	t.Run("gaps section trails the report", func(t *testing.T) {
		assert.Contains(t, prompt, "## Data Gaps")
		assert.Contains(t, prompt, `overall: insufficient data for "Putts"`)
		assert.Contains(t, prompt, "report is partial")
	})

	t.Run("rendering is deterministic", func(t *testing.T) {
		assert.Equal(t, prompt, BuildPrompt(promptReport()))
	})

	t.Run("empty sections still render markers", func(t *testing.T) {
		r := promptReport()
		r.TimeSegments = domain.TimeSegmentMetrics{PlayerID: "P1"}
		r.Holes = nil
		r.HolesAvailable = false
		r.Peers.InsufficientPeers = true

		p := BuildPrompt(r)
		assert.Contains(t, p, "Time-of-day split: unavailable")
		assert.Contains(t, p, "Hole breakdown: unavailable")
		assert.Contains(t, p, "Peer comparison: unavailable (insufficient peer data)")
	})

	t.Run("player without a handicap value renders a marker, not a range", func(t *testing.T) {
		r := promptReport()
		r.Peers = domain.PeerComparison{PlayerID: "P1", InsufficientPeers: true}

		p := BuildPrompt(r)
		assert.Contains(t, p, "- Peer group: unavailable (no handicap value for this player)")
		assert.NotContains(t, p, "handicap range")
	})

	t.Run("no gaps section when complete", func(t *testing.T) {
		r := promptReport()
		r.Partial = false
		r.Gaps = nil

		p := BuildPrompt(r)
		assert.NotContains(t, p, "## Data Gaps")
		assert.NotContains(t, p, "report is partial")
	})
}
