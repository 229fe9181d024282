package analysis

import (
	"golfsight/pkg/contracts/domain"
)

// ComputeOverall computes the per-statistic field comparison for the selected
// player: the field mean, the field mean with the subject excluded, the
// player's delta from that rest-of-field mean, and the player's fractional
// percentile rank.
//
// Missing cells are excluded from a statistic's aggregate, never coerced to
// zero. A statistic left with fewer than two usable values, or one the player
// carries no value for, is flagged InsufficientData instead of being silently
// computed. Fails with *PlayerNotFoundError when the identifier is absent.
func ComputeOverall(ds domain.Dataset, playerID string) (domain.OverallMetrics, error) {
	player, ok := ds.Player(playerID)
	if !ok {
		return domain.OverallMetrics{}, &PlayerNotFoundError{PlayerID: playerID}
	}

	out := domain.OverallMetrics{
		PlayerID: playerID,
		Stats:    make([]domain.StatComparison, 0, len(ds.Schema.Stats)),
	}

	for _, stat := range ds.Schema.Stats {
		cmp := domain.StatComparison{Name: stat}

		var all, others []float64
		for _, p := range ds.Players {
			v, has := p.Stat(stat)
			if !has {
				continue
			}
			all = append(all, v)
			if p.ID != playerID {
				others = append(others, v)
			}
		}
		cmp.SampleSize = len(all)

		if fm, ok := mean(all); ok {
			cmp.FieldMean = fm
		}

		pv, hasValue := player.Stat(stat)
		if hasValue {
			v := pv
			cmp.PlayerValue = &v
		}

		if !hasValue || len(all) < 2 {
			cmp.InsufficientData = true
			out.Stats = append(out.Stats, cmp)
			continue
		}

		if em, ok := mean(others); ok {
			cmp.FieldMeanExclPlayer = em
			cmp.Delta = pv - em
		}
		if pct, ok := percentileRank(pv, all); ok {
			cmp.Percentile = pct
		}

		out.Stats = append(out.Stats, cmp)
	}

	return out, nil
}
