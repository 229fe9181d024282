package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"golfsight/pkg/contracts/domain"
)

// WriteText writes the report as ordered "key: value" lines, the plain
// serialization required at the export boundary.
func WriteText(w io.Writer, r domain.MetricsReport) error {
	for _, p := range Pairs(r) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", p.Key, p.Value); err != nil {
			return fmt.Errorf("write text export: %w", err)
		}
	}
	return nil
}

// WriteCSV writes the report as a two-column key,value CSV.
func WriteCSV(w io.Writer, r domain.MetricsReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "value"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range Pairs(r) {
		if err := cw.Write([]string{p.Key, p.Value}); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWorkbook writes the report as an Excel workbook with a summary sheet
// of key/value pairs and, when hole data is present, a hole-by-hole sheet.
func WriteWorkbook(w io.Writer, r domain.MetricsReport) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]string{"Key", "Value"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, p := range Pairs(r) {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &[]string{p.Key, p.Value}); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+2, err)
		}
	}

	if r.HolesAvailable {
		const holeSheet = "Holes"
		if _, err := f.NewSheet(holeSheet); err != nil {
			return fmt.Errorf("create hole sheet: %w", err)
		}
		header := []string{"Hole", "Par", "Score", "VsPar", "PeerAvg", "FieldAvg"}
		if err := f.SetSheetRow(holeSheet, "A1", &header); err != nil {
			return fmt.Errorf("write hole header: %w", err)
		}
		for i, h := range r.Holes {
			peer := unavailable
			if h.PeerAvailable {
				peer = formatFloat(h.PeerAvg)
			}
			row := []interface{}{h.Hole, h.Par, h.PlayerScore, h.VsPar, peer, formatFloat(h.FieldAvg)}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(holeSheet, cell, &row); err != nil {
				return fmt.Errorf("write hole row %d: %w", i+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	slog.Debug("workbook export written",
		slog.String("player", r.PlayerID),
		slog.Bool("holes", r.HolesAvailable),
	)
	return nil
}
