package analysis

import (
	"fmt"

	"golfsight/pkg/contracts/domain"
)

// Assemble merges the four analysis outputs into one MetricsReport. It is a
// pure merge: no recomputation, no I/O. Every insufficient-data or
// unavailable marker carried by a component is collected into the report's
// Gaps list and flips Partial, so the downstream narrative generator can
// communicate the gap instead of fabricating a value.
func Assemble(overall domain.OverallMetrics, timeSegments domain.TimeSegmentMetrics,
	peers domain.PeerComparison, holes []domain.HoleStat) domain.MetricsReport {

	report := domain.MetricsReport{
		PlayerID:     overall.PlayerID,
		Overall:      overall,
		TimeSegments: timeSegments,
		Peers:        peers,
		Holes:        holes,
	}

	var gaps []string

	for _, s := range overall.Stats {
		if s.InsufficientData {
			gaps = append(gaps, fmt.Sprintf("overall: insufficient data for %q", s.Name))
		}
	}

	for _, seg := range timeSegments.Segments {
		if !seg.PlayerAvailable {
			gaps = append(gaps, fmt.Sprintf("time segments: no player rounds in %q", seg.Label))
		}
	}
	if len(timeSegments.Segments) == 0 {
		gaps = append(gaps, "time segments: unavailable (no tee time or scoring data)")
	}

	if peers.InsufficientPeers {
		if peers.GroupRange == "" {
			gaps = append(gaps, "peers: player has no skill index value")
		} else {
			gaps = append(gaps, fmt.Sprintf("peers: insufficient peer data in group %s (size %d)",
				peers.GroupRange, peers.GroupSize))
		}
	}
	for _, s := range peers.Stats {
		if s.InsufficientData {
			gaps = append(gaps, fmt.Sprintf("peers: insufficient data for %q", s.Name))
		}
	}

	if len(holes) > 0 {
		report.HolesAvailable = true
		for _, h := range holes {
			report.TotalParDelta += h.VsPar
		}
	} else {
		gaps = append(gaps, "holes: no per-hole data")
	}

	// A single-snapshot dataset carries one skill-index value per player, so
	// no trend can be derived; the placeholder stays marked unavailable
	// rather than being invented.
	report.HandicapTrendAvailable = false

	report.Gaps = gaps
	report.Partial = len(gaps) > 0
	return report
}
