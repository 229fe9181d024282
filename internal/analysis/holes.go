package analysis

import (
	"golfsight/pkg/contracts/domain"
)

// BuildHoleBreakdown aggregates the selected player's per-hole scores against
// the peer-group and field averages, in source hole order (hole 1..N, never
// re-sorted).
//
// Every player carrying hole data who participates in the comparison must
// expose the same number of holes as the subject; a differing length fails
// with *HoleDataMismatchError. A subject without hole data returns a nil
// breakdown and no error; the assembler reports the gap.
func BuildHoleBreakdown(ds domain.Dataset, playerID string, group PeerGroup) ([]domain.HoleStat, error) {
	player, ok := ds.Player(playerID)
	if !ok {
		return nil, &PlayerNotFoundError{PlayerID: playerID}
	}
	if !player.HasHoles() {
		return nil, nil
	}
	want := len(player.Holes)

	inGroup := make(map[string]bool, group.Size())
	for _, p := range group.Players {
		inGroup[p.ID] = true
	}

	// Uniform shape check across every participant with hole data.
	for _, p := range ds.Players {
		if p.HasHoles() && len(p.Holes) != want {
			return nil, &HoleDataMismatchError{PlayerID: p.ID, Want: want, Got: len(p.Holes)}
		}
	}

	out := make([]domain.HoleStat, 0, want)
	for i, hole := range player.Holes {
		hs := domain.HoleStat{
			Hole:        i + 1,
			Par:         hole.Par,
			PlayerScore: hole.Score,
			VsPar:       hole.VsPar(),
		}

		var peerScores, fieldScores []float64
		for _, p := range ds.Players {
			if !p.HasHoles() {
				continue
			}
			fieldScores = append(fieldScores, float64(p.Holes[i].Score))
			if p.ID != playerID && inGroup[p.ID] {
				peerScores = append(peerScores, float64(p.Holes[i].Score))
			}
		}

		if avg, ok := mean(peerScores); ok {
			hs.PeerAvg = avg
			hs.PeerAvailable = true
		}
		if avg, ok := mean(fieldScores); ok {
			hs.FieldAvg = avg
		}
		out = append(out, hs)
	}

	return out, nil
}
