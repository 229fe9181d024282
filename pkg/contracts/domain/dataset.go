package domain

import (
	"time"
)

// Table represents a raw tabular input exactly as parsed from an uploaded
// spreadsheet or delimited file: one header row and zero or more data rows.
// Cell values are kept as strings; typing is resolved by schema validation.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Schema is the resolved shape of an uploaded table: which column identifies
// the player, which columns are numeric statistics, and which columns carry
// round-level attributes. Produced by schema validation, consumed by the
// dataset builder and the analysis engine.
type Schema struct {
	// IDColumn is the header of the column resolved as the player identifier.
	IDColumn string `json:"id_column" validate:"required"`

	// Stats lists the numeric statistic column headers in source order.
	Stats []string `json:"stats" validate:"required,min=1"`

	// TeeTimeColumn is the header of the tee time column, empty if absent.
	TeeTimeColumn string `json:"tee_time_column,omitempty"`

	// DateColumn is the header of the round date column, empty if absent.
	DateColumn string `json:"date_column,omitempty"`

	// HoleColumns lists per-hole score column headers in hole order (1..N).
	HoleColumns []string `json:"hole_columns,omitempty"`

	// ParColumns lists per-hole par column headers in hole order (1..N).
	// Either empty or the same length as HoleColumns.
	ParColumns []string `json:"par_columns,omitempty"`
}

// HasStat reports whether the named statistic is part of the schema.
func (s Schema) HasStat(name string) bool {
	for _, st := range s.Stats {
		if st == name {
			return true
		}
	}
	return false
}

// HoleScore is one hole of a round: the strokes taken and the hole's par.
type HoleScore struct {
	Score int `json:"score"`
	Par   int `json:"par"`
}

// VsPar returns the signed score relative to par for this hole.
func (h HoleScore) VsPar() int {
	return h.Score - h.Par
}

// PlayerRecord represents one player's row in the dataset: a unique
// identifier, a mapping from statistic name to numeric value, and optional
// round-level attributes. A statistic whose cell was empty or non-numeric is
// absent from Stats entirely, never coerced to zero.
type PlayerRecord struct {
	ID      string             `json:"id" validate:"required"`
	Stats   map[string]float64 `json:"stats" validate:"required"`
	TeeTime *time.Time         `json:"tee_time,omitempty"`
	Date    *time.Time         `json:"date,omitempty"`
	Holes   []HoleScore        `json:"holes,omitempty"`
}

// Stat returns the player's value for the named statistic and whether the
// player carries it.
func (p PlayerRecord) Stat(name string) (float64, bool) {
	v, ok := p.Stats[name]
	return v, ok
}

// HasHoles reports whether the record carries per-hole data.
func (p PlayerRecord) HasHoles() bool {
	return len(p.Holes) > 0
}

// Dataset is an ordered collection of player records sharing one schema.
// Invariant: every record has a non-empty identifier, identifiers are unique,
// and the schema names at least one numeric statistic.
type Dataset struct {
	Schema  Schema         `json:"schema"`
	Players []PlayerRecord `json:"players"`
}

// Player returns the record with the given identifier.
func (d Dataset) Player(id string) (PlayerRecord, bool) {
	for _, p := range d.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerRecord{}, false
}

// PlayerIDs returns all identifiers in dataset order.
func (d Dataset) PlayerIDs() []string {
	ids := make([]string, 0, len(d.Players))
	for _, p := range d.Players {
		ids = append(ids, p.ID)
	}
	return ids
}
