package exporter

import (
	"fmt"

	"golfsight/pkg/contracts/domain"
)

// unavailable marks any field the engine reported without a value.
const unavailable = "unavailable"

// Pair is one key/value line of the plain-text export.
type Pair struct {
	Key   string
	Value string
}

// formatFloat formats a float with exactly 2 decimal places so that 13.4
// exports as 13.40 consistently.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func formatSigned(f float64) string {
	return fmt.Sprintf("%+.2f", f)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Pairs flattens a MetricsReport into ordered key/value pairs. Every
// placeholder the narrative template references appears exactly once, either
// with its value or with the unavailable marker.
func Pairs(r domain.MetricsReport) []Pair {
	var out []Pair
	add := func(key, value string) {
		out = append(out, Pair{Key: key, Value: value})
	}

	add("player", r.PlayerID)
	add("partial", formatBool(r.Partial))

	for _, s := range r.Overall.Stats {
		prefix := "overall." + s.Name
		if s.InsufficientData {
			add(prefix, unavailable)
			continue
		}
		if s.PlayerValue != nil {
			add(prefix+".value", formatFloat(*s.PlayerValue))
		}
		add(prefix+".field_mean", formatFloat(s.FieldMean))
		add(prefix+".field_mean_excl", formatFloat(s.FieldMeanExclPlayer))
		add(prefix+".delta", formatSigned(s.Delta))
		add(prefix+".percentile", formatFloat(s.Percentile))
		add(prefix+".sample_size", fmt.Sprintf("%d", s.SampleSize))
	}

	for _, seg := range r.TimeSegments.Segments {
		prefix := "time." + seg.Label
		if seg.PlayerAvailable {
			add(prefix+".player_avg", formatFloat(seg.PlayerAvg))
		} else {
			add(prefix+".player_avg", unavailable)
		}
		if seg.FieldAvailable {
			add(prefix+".field_avg", formatFloat(seg.FieldAvg))
		} else {
			add(prefix+".field_avg", unavailable)
		}
	}
	if r.TimeSegments.DeltaAvailable {
		add("time.player_delta", formatSigned(r.TimeSegments.PlayerDelta))
	} else {
		add("time.player_delta", unavailable)
	}
	if r.TimeSegments.OptimalWindow != "" {
		add("time.optimal_window", r.TimeSegments.OptimalWindow)
	} else {
		add("time.optimal_window", unavailable)
	}

	if r.Peers.GroupRange != "" {
		add("peers.group_range", r.Peers.GroupRange)
	} else {
		add("peers.group_range", unavailable)
	}
	add("peers.group_size", fmt.Sprintf("%d", r.Peers.GroupSize))
	if r.Peers.InsufficientPeers {
		add("peers.comparison", unavailable)
	} else {
		for _, s := range r.Peers.Stats {
			prefix := "peers." + s.Name
			if s.InsufficientData {
				add(prefix, unavailable)
				continue
			}
			add(prefix+".peer_mean", formatFloat(s.PeerMean))
			add(prefix+".delta", formatSigned(s.Delta))
		}
	}

	if r.HolesAvailable {
		add("holes.total_par_delta", fmt.Sprintf("%+d", r.TotalParDelta))
		for _, h := range r.Holes {
			prefix := fmt.Sprintf("holes.%d", h.Hole)
			add(prefix+".par", fmt.Sprintf("%d", h.Par))
			add(prefix+".score", fmt.Sprintf("%d", h.PlayerScore))
			add(prefix+".vs_par", fmt.Sprintf("%+d", h.VsPar))
			if h.PeerAvailable {
				add(prefix+".peer_avg", formatFloat(h.PeerAvg))
			} else {
				add(prefix+".peer_avg", unavailable)
			}
			add(prefix+".field_avg", formatFloat(h.FieldAvg))
		}
	} else {
		add("holes", unavailable)
	}

	if r.HandicapTrendAvailable {
		add("handicap.trend", "available")
	} else {
		add("handicap.trend", unavailable)
	}

	for i, gap := range r.Gaps {
		add(fmt.Sprintf("gap.%d", i+1), gap)
	}

	return out
}
