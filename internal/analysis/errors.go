package analysis

import (
	"fmt"
)

// SchemaError indicates the input table's schema is malformed or ambiguous:
// no resolvable player identifier column, no numeric statistic columns, or
// duplicate/empty identifier values. It is a data-quality problem the caller
// must fix upstream; the engine never retries.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema: %s", e.Reason)
}

// PlayerNotFoundError indicates the selected player identifier is absent
// from the dataset.
type PlayerNotFoundError struct {
	PlayerID string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player %q not found in dataset", e.PlayerID)
}

// MissingFieldError indicates a required field, such as the skill index used
// for peer grouping, is absent from the dataset schema.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q absent from schema", e.Field)
}

// EmptyGroupError indicates the player's skill-index bucket has no other
// members, so no peer comparison is statistically possible. Callers decide
// whether to surface this as "insufficient peer data" instead of failing the
// whole analysis.
type EmptyGroupError struct {
	PlayerID   string
	GroupRange string
	GroupSize  int
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("peer group %s for player %q has no other members (size %d)",
		e.GroupRange, e.PlayerID, e.GroupSize)
}

// HoleDataMismatchError indicates per-hole data is not uniform across the
// players involved in a comparison: one player's recorded hole count differs
// from the subject's.
type HoleDataMismatchError struct {
	PlayerID string
	Want     int
	Got      int
}

func (e *HoleDataMismatchError) Error() string {
	return fmt.Sprintf("player %q has %d recorded holes, expected %d",
		e.PlayerID, e.Got, e.Want)
}
