package narrative

import (
	"fmt"
	"strings"

	"golfsight/pkg/contracts/domain"
)

// unavailable is the fixed marker written for any value the engine did not
// supply. The narrative layer must report the gap, never invent a number.
const unavailable = "unavailable"

// SystemPrompt frames the generator's role and forbids it from fabricating
// values the metrics report does not carry.
const SystemPrompt = `You are a professional golf performance analyst. You are given a structured metrics report for one player. Write a clear, professional analysis following the section structure of the report exactly. Use only the numbers present in the report; where a value is marked unavailable, state that the data was not available rather than estimating or inventing a figure.`

// BuildPrompt renders a MetricsReport into the fixed six-section analysis
// prompt consumed by the narrative generator. The output is deterministic:
// section order is fixed and every value is either a number from the report
// or the unavailable marker.
func BuildPrompt(r domain.MetricsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Performance analysis for player %s\n", r.PlayerID)
	if r.Partial {
		b.WriteString("Note: this report is partial; gaps are listed at the end.\n")
	}

	b.WriteString("\n## Overall Performance Metrics\n")
	for _, s := range r.Overall.Stats {
		if s.InsufficientData {
			fmt.Fprintf(&b, "- %s: %s (insufficient data)\n", s.Name, unavailable)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s (field avg excl. player %.2f, delta %+.2f, percentile %.1f, field size %d)\n",
			s.Name, formatValue(s.PlayerValue), s.FieldMeanExclPlayer, s.Delta, s.Percentile, s.SampleSize)
	}

	b.WriteString("\n## Time of Day Performance Analysis\n")
	writeTimeSegments(&b, r.TimeSegments)

	b.WriteString("\n## Technical Handicap Analysis\n")
	writePeers(&b, r.Peers)
	fmt.Fprintf(&b, "- Handicap trend: %s\n", trendMarker(r.HandicapTrendAvailable))

	b.WriteString("\n## Hole-by-Hole Statistical Breakdown\n")
	writeHoles(&b, r)

	b.WriteString("\n## Key Performance Insights\n")
	b.WriteString("Derive insights strictly from the figures above.\n")

	b.WriteString("\n## Professional Development Recommendations\n")
	b.WriteString("Base every recommendation on a measured gap above; do not introduce new figures.\n")

	if len(r.Gaps) > 0 {
		b.WriteString("\n## Data Gaps\n")
		for _, gap := range r.Gaps {
			fmt.Fprintf(&b, "- %s\n", gap)
		}
	}

	return b.String()
}

func writeTimeSegments(b *strings.Builder, ts domain.TimeSegmentMetrics) {
	if len(ts.Segments) == 0 {
		fmt.Fprintf(b, "- Time-of-day split: %s\n", unavailable)
		return
	}
	for _, seg := range ts.Segments {
		player := unavailable
		if seg.PlayerAvailable {
			player = fmt.Sprintf("%.2f over %d round(s)", seg.PlayerAvg, seg.PlayerRounds)
		}
		field := unavailable
		if seg.FieldAvailable {
			field = fmt.Sprintf("%.2f over %d round(s)", seg.FieldAvg, seg.FieldRounds)
		}
		fmt.Fprintf(b, "- %s (%s): player %s, field %s\n", seg.Label, ts.ScoreStat, player, field)
	}
	if ts.DeltaAvailable {
		fmt.Fprintf(b, "- Player delta (%s - %s): %+.2f\n",
			ts.Segments[0].Label, ts.Segments[1].Label, ts.PlayerDelta)
	} else {
		fmt.Fprintf(b, "- Player delta between segments: %s\n", unavailable)
	}
	if ts.OptimalWindow != "" {
		fmt.Fprintf(b, "- Optimal scoring window: %s\n", ts.OptimalWindow)
	} else {
		fmt.Fprintf(b, "- Optimal scoring window: %s\n", unavailable)
	}
}

func writePeers(b *strings.Builder, p domain.PeerComparison) {
	if p.GroupRange == "" {
		fmt.Fprintf(b, "- Peer group: %s (no handicap value for this player)\n", unavailable)
		return
	}
	fmt.Fprintf(b, "- Peer group: handicap range %s, %d player(s)\n", p.GroupRange, p.GroupSize)
	if p.InsufficientPeers {
		fmt.Fprintf(b, "- Peer comparison: %s (insufficient peer data)\n", unavailable)
		return
	}
	for _, s := range p.Stats {
		if s.InsufficientData {
			fmt.Fprintf(b, "- %s vs peers: %s\n", s.Name, unavailable)
			continue
		}
		fmt.Fprintf(b, "- %s vs peers: peer mean %.2f, delta %+.2f\n", s.Name, s.PeerMean, s.Delta)
	}
}

func writeHoles(b *strings.Builder, r domain.MetricsReport) {
	if !r.HolesAvailable {
		fmt.Fprintf(b, "- Hole breakdown: %s\n", unavailable)
		return
	}
	fmt.Fprintf(b, "- Total vs par: %+d\n", r.TotalParDelta)
	for _, h := range r.Holes {
		peer := unavailable
		if h.PeerAvailable {
			peer = fmt.Sprintf("%.2f", h.PeerAvg)
		}
		fmt.Fprintf(b, "- Hole %d (par %d): score %d (%+d), peer avg %s, field avg %.2f\n",
			h.Hole, h.Par, h.PlayerScore, h.VsPar, peer, h.FieldAvg)
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return unavailable
	}
	return fmt.Sprintf("%.2f", *v)
}

func trendMarker(available bool) string {
	if available {
		return "available"
	}
	return unavailable
}
