package dataprocessing

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golfsight/internal/analysis"
	"golfsight/pkg/contracts/domain"
)

// teeTimeFormats lists the accepted tee time cell layouts, tried in order.
var teeTimeFormats = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"03:04 PM",
}

// dateFormats lists the accepted round date cell layouts, tried in order.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2-Jan-2006",
}

// LoadDataset parses a file by extension (.xlsx or .csv), resolves its
// schema, and builds the typed Dataset the engine consumes.
func LoadDataset(path string) (domain.Dataset, error) {
	var (
		table domain.Table
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		table, err = ParseWorkbookFile(path)
	case ".csv":
		table, err = ParseCSVFile(path)
	default:
		return domain.Dataset{}, fmt.Errorf("unsupported file format %q (want .xlsx or .csv)", ext)
	}
	if err != nil {
		return domain.Dataset{}, err
	}
	return BuildDataset(table)
}

// BuildDataset resolves the table's schema and converts rows into typed
// player records. Missing or non-numeric statistic cells are left out of the
// record's Stats map entirely; they are excluded from aggregates downstream,
// never coerced to zero. Per-hole data is kept only for holes where both the
// score and the par cell parse.
func BuildDataset(table domain.Table) (domain.Dataset, error) {
	schema, err := analysis.ResolveSchema(table)
	if err != nil {
		return domain.Dataset{}, err
	}

	index := make(map[string]int, len(table.Headers))
	for i, h := range table.Headers {
		index[h] = i
	}

	ds := domain.Dataset{
		Schema:  schema,
		Players: make([]domain.PlayerRecord, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		rec := domain.PlayerRecord{
			ID:    strings.TrimSpace(cellAt(row, index[schema.IDColumn])),
			Stats: make(map[string]float64, len(schema.Stats)),
		}

		for _, stat := range schema.Stats {
			if v, ok := analysis.ParseNumericCell(cellAt(row, index[stat])); ok {
				rec.Stats[stat] = v
			}
		}

		if schema.TeeTimeColumn != "" {
			rec.TeeTime = parseTeeTime(cellAt(row, index[schema.TeeTimeColumn]))
		}
		if schema.DateColumn != "" {
			rec.Date = parseDate(cellAt(row, index[schema.DateColumn]))
		}

		for i := range schema.HoleColumns {
			score, okScore := analysis.ParseNumericCell(cellAt(row, index[schema.HoleColumns[i]]))
			par, okPar := analysis.ParseNumericCell(cellAt(row, index[schema.ParColumns[i]]))
			if !okScore || !okPar {
				continue
			}
			rec.Holes = append(rec.Holes, domain.HoleScore{Score: int(score), Par: int(par)})
		}

		ds.Players = append(ds.Players, rec)
	}

	return ds, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseTeeTime(cell string) *time.Time {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	for _, layout := range teeTimeFormats {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return &t
		}
	}
	return nil
}

func parseDate(cell string) *time.Time {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
