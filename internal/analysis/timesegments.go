package analysis

import (
	"fmt"
	"time"

	"golfsight/pkg/contracts/domain"
)

// Segment is one labeled time-of-day window. Start is minutes from midnight;
// the window runs from Start (inclusive) up to the next segment's Start
// (exclusive), so a boundary tee time always falls in the later segment.
type Segment struct {
	Label string
	Start int
}

// SegmentRule is a closed, ordered set of time-of-day segments covering the
// whole day. The first segment must start at midnight.
type SegmentRule []Segment

// DefaultSegmentRule splits the day at 10:00: morning before, afternoon from
// 10:00 on.
func DefaultSegmentRule() SegmentRule {
	return SegmentRule{
		{Label: "morning", Start: 0},
		{Label: "afternoon", Start: 600},
	}
}

// Validate checks the rule is well formed: at least two segments, starting
// at midnight, strictly increasing, all within the day.
func (r SegmentRule) Validate() error {
	if len(r) < 2 {
		return fmt.Errorf("segment rule needs at least 2 segments, got %d", len(r))
	}
	if r[0].Start != 0 {
		return fmt.Errorf("first segment must start at midnight, got %d", r[0].Start)
	}
	for i := 1; i < len(r); i++ {
		if r[i].Start <= r[i-1].Start {
			return fmt.Errorf("segment starts must be strictly increasing: %q at %d after %q at %d",
				r[i].Label, r[i].Start, r[i-1].Label, r[i-1].Start)
		}
		if r[i].Start >= 24*60 {
			return fmt.Errorf("segment %q starts beyond the day: %d", r[i].Label, r[i].Start)
		}
	}
	return nil
}

// Classify returns the label of the segment containing the given time of day.
func (r SegmentRule) Classify(t time.Time) string {
	minutes := t.Hour()*60 + t.Minute()
	label := r[0].Label
	for _, s := range r {
		if minutes >= s.Start {
			label = s.Label
		}
	}
	return label
}

// ComputeTimeSegments splits the field by tee time into the rule's segments
// and computes per-segment scoring averages for the selected player and the
// field, the delta between the first two segments, and the optimal window.
//
// A segment the player has no rounds in is reported unavailable, never zero
// or interpolated. Fails with *PlayerNotFoundError when the player is absent
// and *MissingFieldError when the scoring statistic is not in the schema.
func ComputeTimeSegments(ds domain.Dataset, playerID string, rule SegmentRule, scoreStat string) (domain.TimeSegmentMetrics, error) {
	if _, ok := ds.Player(playerID); !ok {
		return domain.TimeSegmentMetrics{}, &PlayerNotFoundError{PlayerID: playerID}
	}
	if !ds.Schema.HasStat(scoreStat) {
		return domain.TimeSegmentMetrics{}, &MissingFieldError{Field: scoreStat}
	}
	if err := rule.Validate(); err != nil {
		return domain.TimeSegmentMetrics{}, fmt.Errorf("invalid segment rule: %w", err)
	}

	out := domain.TimeSegmentMetrics{
		PlayerID:  playerID,
		ScoreStat: scoreStat,
		Segments:  make([]domain.SegmentMetrics, 0, len(rule)),
	}

	playerScores := make(map[string][]float64, len(rule))
	fieldScores := make(map[string][]float64, len(rule))
	for _, p := range ds.Players {
		if p.TeeTime == nil {
			continue
		}
		score, ok := p.Stat(scoreStat)
		if !ok {
			continue
		}
		label := rule.Classify(*p.TeeTime)
		fieldScores[label] = append(fieldScores[label], score)
		if p.ID == playerID {
			playerScores[label] = append(playerScores[label], score)
		}
	}

	for _, seg := range rule {
		sm := domain.SegmentMetrics{Label: seg.Label}
		if avg, ok := mean(playerScores[seg.Label]); ok {
			sm.PlayerAvg = avg
			sm.PlayerAvailable = true
			sm.PlayerRounds = len(playerScores[seg.Label])
		}
		if avg, ok := mean(fieldScores[seg.Label]); ok {
			sm.FieldAvg = avg
			sm.FieldAvailable = true
			sm.FieldRounds = len(fieldScores[seg.Label])
		}
		out.Segments = append(out.Segments, sm)
	}

	// Deltas compare the rule's first two segments; delta(a, b) == -delta(b, a)
	// holds because the delta is a plain difference of the two averages.
	first, second := out.Segments[0], out.Segments[1]
	if first.PlayerAvailable && second.PlayerAvailable {
		out.PlayerDelta = first.PlayerAvg - second.PlayerAvg
		out.DeltaAvailable = true
	}
	if first.FieldAvailable && second.FieldAvailable {
		out.FieldDelta = first.FieldAvg - second.FieldAvg
	}

	out.OptimalWindow = optimalWindow(out.Segments)
	return out, nil
}

// optimalWindow picks the segment with the lower (better) scoring average:
// the player's own averages when at least two segments have them, otherwise
// the field averages. Ties keep the earlier segment.
func optimalWindow(segments []domain.SegmentMetrics) string {
	best := func(available func(domain.SegmentMetrics) bool, avg func(domain.SegmentMetrics) float64) (string, int) {
		label := ""
		count := 0
		bestAvg := 0.0
		for _, s := range segments {
			if !available(s) {
				continue
			}
			count++
			if label == "" || avg(s) < bestAvg {
				label = s.Label
				bestAvg = avg(s)
			}
		}
		return label, count
	}

	if label, n := best(
		func(s domain.SegmentMetrics) bool { return s.PlayerAvailable },
		func(s domain.SegmentMetrics) float64 { return s.PlayerAvg },
	); n >= 2 {
		return label
	}
	if label, n := best(
		func(s domain.SegmentMetrics) bool { return s.FieldAvailable },
		func(s domain.SegmentMetrics) float64 { return s.FieldAvg },
	); n >= 2 {
		return label
	}
	return ""
}
