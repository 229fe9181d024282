package analysis

import (
	"regexp"
	"sort"
	"strings"

	"golfsight/pkg/contracts/domain"
)

var (
	holeColumnRe = regexp.MustCompile(`(?i)^hole\s*(\d+)$`)
	parColumnRe  = regexp.MustCompile(`(?i)^par\s*(\d+)$`)
)

// ResolveSchema validates a raw table and resolves its schema: the player
// identifier column, the ordered numeric statistic columns, and any
// round-level attribute columns (tee time, date, per-hole scores and pars).
//
// The check is pure: it never mutates the table. It fails with *SchemaError
// when no identifier column can be found, when the identifier column contains
// duplicate or empty values, or when no numeric statistic column exists.
func ResolveSchema(table domain.Table) (domain.Schema, error) {
	if len(table.Headers) == 0 {
		return domain.Schema{}, &SchemaError{Reason: "table has no header row"}
	}

	schema := domain.Schema{}

	// Identifier column: first header containing "player" or "name".
	idIdx := -1
	for i, h := range table.Headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		if strings.Contains(lower, "player") || strings.Contains(lower, "name") {
			idIdx = i
			schema.IDColumn = h
			break
		}
	}
	if idIdx < 0 {
		return domain.Schema{}, &SchemaError{Reason: "no player identifier column (header containing \"player\" or \"name\")"}
	}

	if err := checkIdentifiers(table, idIdx); err != nil {
		return domain.Schema{}, err
	}

	type numberedColumn struct {
		header string
		number int
	}
	var holeCols, parCols []numberedColumn

	for i, h := range table.Headers {
		if i == idIdx {
			continue
		}
		trimmed := strings.TrimSpace(h)
		lower := strings.ToLower(trimmed)

		switch {
		case holeColumnRe.MatchString(trimmed):
			n := holeColumnRe.FindStringSubmatch(trimmed)[1]
			holeCols = append(holeCols, numberedColumn{header: h, number: atoiSafe(n)})
		case parColumnRe.MatchString(trimmed):
			n := parColumnRe.FindStringSubmatch(trimmed)[1]
			parCols = append(parCols, numberedColumn{header: h, number: atoiSafe(n)})
		case strings.Contains(lower, "tee time") || strings.Contains(lower, "tee off"):
			if schema.TeeTimeColumn == "" {
				schema.TeeTimeColumn = h
			}
		case strings.Contains(lower, "date"):
			if schema.DateColumn == "" {
				schema.DateColumn = h
			}
		default:
			if columnIsNumeric(table, i) {
				schema.Stats = append(schema.Stats, h)
			}
		}
	}

	if len(schema.Stats) == 0 {
		return domain.Schema{}, &SchemaError{Reason: "no numeric statistic columns"}
	}

	// Hole and par columns are kept only as an aligned pair; per-hole data
	// without pars (or vice versa) cannot produce vs-par comparisons, so the
	// breakdown section is left to report the gap instead.
	sort.Slice(holeCols, func(a, b int) bool { return holeCols[a].number < holeCols[b].number })
	sort.Slice(parCols, func(a, b int) bool { return parCols[a].number < parCols[b].number })
	if len(holeCols) > 0 && len(holeCols) == len(parCols) {
		for i := range holeCols {
			schema.HoleColumns = append(schema.HoleColumns, holeCols[i].header)
			schema.ParColumns = append(schema.ParColumns, parCols[i].header)
		}
	}

	return schema, nil
}

// checkIdentifiers verifies the identifier column has a non-empty, unique
// value in every row.
func checkIdentifiers(table domain.Table, idIdx int) error {
	seen := make(map[string]bool, len(table.Rows))
	for r, row := range table.Rows {
		var id string
		if idIdx < len(row) {
			id = strings.TrimSpace(row[idIdx])
		}
		if id == "" {
			return &SchemaError{Reason: "empty player identifier in row " + itoa(r+1)}
		}
		if seen[id] {
			return &SchemaError{Reason: "duplicate player identifier " + id}
		}
		seen[id] = true
	}
	return nil
}

// columnIsNumeric reports whether every non-empty cell in the column parses
// as a number, with at least one non-empty cell present.
func columnIsNumeric(table domain.Table, col int) bool {
	nonEmpty := 0
	for _, row := range table.Rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, ok := ParseNumericCell(cell); !ok {
			return false
		}
	}
	return nonEmpty > 0
}
