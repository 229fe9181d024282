// Package analysis implements the golf performance metrics engine.
//
// Given a validated Dataset of player statistics, the engine produces a
// deterministic MetricsReport combining four comparative views that a
// downstream narrative generator turns into prose:
//
//  1. Overall field comparison: per-statistic field means (with and without
//     the subject), deltas, and fractional percentile ranks
//  2. Peer grouping: skill-index bucketing and player-vs-peer-group deltas
//  3. Time-of-day split: per-segment scoring averages and the optimal window
//  4. Hole breakdown: per-hole scores against peer and field averages
//
// # Architecture
//
//   - schema.go: tabular schema resolution and validation
//   - overall.go: per-statistic field comparison
//   - peers.go: skill-index bucketing and peer comparison
//   - timesegments.go: time-of-day segmentation
//   - holes.go: per-hole breakdown
//   - assemble.go: report assembly and partial-data markers
//   - engine.go: orchestration facade
//
// # Determinism
//
// Every function here is pure with respect to its inputs: no clock reads in
// computed values, no map-order dependence in output, no shared state.
// Calling the engine twice on an unchanged Dataset yields bit-identical
// reports.
//
// # Error semantics
//
// Data-quality problems (SchemaError, PlayerNotFoundError, MissingFieldError,
// HoleDataMismatchError) fail fast. Statistically degenerate comparisons
// (EmptyGroupError, insufficient per-statistic samples, segments without
// rounds) degrade to explicit markers inside the report so the caller gets a
// usable result with a clearly flagged gap.
package analysis
