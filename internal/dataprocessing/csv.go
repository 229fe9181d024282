package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golfsight/pkg/contracts/domain"
)

// ParseCSV reads a delimited text file into a raw Table. Rows may have
// ragged lengths; short rows read as missing trailing cells.
func ParseCSV(r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read csv: %w", err)
	}
	return tableFromRows(rows)
}

// ParseCSVFile reads a delimited text file from disk. See ParseCSV.
func ParseCSVFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}
