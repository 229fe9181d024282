package analysis

import (
	"fmt"
	"math"

	"golfsight/pkg/contracts/domain"
)

// DefaultBucketWidth is the skill-index bucket width used when the caller
// does not override it.
const DefaultBucketWidth = 5.0

// PeerGroup is one skill-index bucket of the dataset partition: the players
// whose skill index falls in [Lower, Upper). Groups are derived per call,
// never stored.
type PeerGroup struct {
	Key     int
	Lower   float64
	Upper   float64
	Players []domain.PlayerRecord
}

// Size returns the number of players in the group.
func (g PeerGroup) Size() int {
	return len(g.Players)
}

// Range returns the human-readable bucket range. Whole-number widths use the
// inclusive integer form ("5-9" for [5, 10)); fractional widths fall back to
// the half-open form. A zero-value group has no range.
func (g PeerGroup) Range() string {
	width := g.Upper - g.Lower
	if width <= 0 {
		return ""
	}
	if width == math.Trunc(width) && g.Lower == math.Trunc(g.Lower) {
		return fmt.Sprintf("%d-%d", int(g.Lower), int(g.Upper)-1)
	}
	return fmt.Sprintf("[%g, %g)", g.Lower, g.Upper)
}

// BuildPeerGroups partitions the dataset by integer division of the skill
// index by bucketWidth, lower bound inclusive and upper bound exclusive.
// Every player carrying the skill-index field lands in exactly one bucket;
// players without it are left out of the partition.
//
// Fails with *MissingFieldError when the skill-index field is absent from the
// schema.
func BuildPeerGroups(ds domain.Dataset, skillField string, bucketWidth float64) (map[int]PeerGroup, error) {
	if !ds.Schema.HasStat(skillField) {
		return nil, &MissingFieldError{Field: skillField}
	}
	if bucketWidth <= 0 {
		return nil, fmt.Errorf("bucket width must be positive, got %g", bucketWidth)
	}

	groups := make(map[int]PeerGroup)
	for _, p := range ds.Players {
		skill, ok := p.Stat(skillField)
		if !ok {
			continue
		}
		key := int(math.Floor(skill / bucketWidth))
		g, exists := groups[key]
		if !exists {
			g = PeerGroup{
				Key:   key,
				Lower: float64(key) * bucketWidth,
				Upper: float64(key+1) * bucketWidth,
			}
		}
		g.Players = append(g.Players, p)
		groups[key] = g
	}
	return groups, nil
}

// GroupFor returns the peer group containing the given player.
func GroupFor(groups map[int]PeerGroup, player domain.PlayerRecord, skillField string, bucketWidth float64) (PeerGroup, bool) {
	skill, ok := player.Stat(skillField)
	if !ok {
		return PeerGroup{}, false
	}
	g, exists := groups[int(math.Floor(skill/bucketWidth))]
	return g, exists
}

// ComparePlayerToPeers compares the player to the other members of their
// peer group: group size, peer mean per statistic (subject excluded), and
// the player's delta from that mean.
//
// Fails with *EmptyGroupError when the bucket has no member besides the
// subject; the caller decides whether to surface that as insufficient peer
// data rather than suppressing the whole report.
func ComparePlayerToPeers(schema domain.Schema, player domain.PlayerRecord, group PeerGroup) (domain.PeerComparison, error) {
	cmp := domain.PeerComparison{
		PlayerID:   player.ID,
		GroupRange: group.Range(),
		GroupSize:  group.Size(),
	}

	if group.Size() < 2 {
		return cmp, &EmptyGroupError{
			PlayerID:   player.ID,
			GroupRange: group.Range(),
			GroupSize:  group.Size(),
		}
	}

	for _, stat := range schema.Stats {
		d := domain.PeerStatDelta{Name: stat}

		var peers []float64
		for _, p := range group.Players {
			if p.ID == player.ID {
				continue
			}
			if v, ok := p.Stat(stat); ok {
				peers = append(peers, v)
			}
		}

		pv, hasValue := player.Stat(stat)
		pm, hasPeers := mean(peers)
		if !hasValue || !hasPeers {
			d.InsufficientData = true
		} else {
			d.PeerMean = pm
			d.Delta = pv - pm
		}
		cmp.Stats = append(cmp.Stats, d)
	}

	return cmp, nil
}
