package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"golfsight/pkg/contracts/domain"
)

// ParseWorkbook reads an Excel workbook and extracts the player statistics
// table. The sheet is chosen by content: the first sheet whose header row
// contains a player identifier column wins, falling back to the first sheet.
func ParseWorkbook(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, fmt.Errorf("workbook has no sheets")
	}

	var rows [][]string
	sheetName := ""
	for _, name := range sheets {
		candidate, err := f.GetRows(name)
		if err != nil || len(candidate) == 0 {
			continue
		}
		if sheetName == "" {
			rows = candidate
			sheetName = name
		}
		header := strings.ToLower(strings.Join(candidate[0], " "))
		if strings.Contains(header, "player") || strings.Contains(header, "name") {
			rows = candidate
			sheetName = name
			break
		}
	}
	if sheetName == "" {
		return domain.Table{}, fmt.Errorf("workbook has no readable sheet")
	}

	slog.Debug("parsed workbook sheet",
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)),
	)

	return tableFromRows(rows)
}

// ParseWorkbookFile reads an Excel workbook from disk. See ParseWorkbook.
func ParseWorkbookFile(path string) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return tableFromRows(rows)
}

// tableFromRows splits raw sheet rows into a header row and data rows,
// skipping leading blank rows and trailing all-empty rows.
func tableFromRows(rows [][]string) (domain.Table, error) {
	start := 0
	for start < len(rows) && rowEmpty(rows[start]) {
		start++
	}
	if start >= len(rows) {
		return domain.Table{}, fmt.Errorf("sheet contains no data")
	}

	table := domain.Table{Headers: rows[start]}
	for _, row := range rows[start+1:] {
		if rowEmpty(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		return domain.Table{}, fmt.Errorf("sheet contains a header but no data rows")
	}
	return table, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
