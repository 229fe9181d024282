package dataprocessing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"golfsight/pkg/contracts/domain"
)

func workbookBytes(t *testing.T, sheets map[string][][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

// TestParseWorkbook tests Excel extraction and sheet selection
func TestParseWorkbook(t *testing.T) {
	t.Run("single sheet", func(t *testing.T) {
		buf := workbookBytes(t, map[string][][]string{
			"Stats": {
				{"Player", "Score"},
				{"Ann", "78"},
				{"Bob", "82"},
			},
		})

		table, err := ParseWorkbook(buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"Player", "Score"}, table.Headers)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"Ann", "78"}, table.Rows[0])
	})

	t.Run("sheet with identifier header wins", func(t *testing.T) {
		buf := workbookBytes(t, map[string][][]string{
			"Notes": {
				{"Comment"},
				{"weather was windy"},
			},
			"Rounds": {
				{"Player", "Score"},
				{"Ann", "78"},
			},
		})

		table, err := ParseWorkbook(buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"Player", "Score"}, table.Headers)
	})

	t.Run("blank rows are skipped", func(t *testing.T) {
		buf := workbookBytes(t, map[string][][]string{
			"Stats": {
				{"", ""},
				{"Player", "Score"},
				{"Ann", "78"},
				{"", ""},
				{"Bob", "82"},
			},
		})

		table, err := ParseWorkbook(buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"Player", "Score"}, table.Headers)
		assert.Len(t, table.Rows, 2)
	})

	t.Run("header without data rows", func(t *testing.T) {
		buf := workbookBytes(t, map[string][][]string{
			"Stats": {
				{"Player", "Score"},
			},
		})

		_, err := ParseWorkbook(buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no data rows")
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := ParseWorkbook(strings.NewReader("plain text"))
		assert.Error(t, err)
	})
}

// TestParseCSV tests delimited text extraction
func TestParseCSV(t *testing.T) {
	t.Run("basic table", func(t *testing.T) {
		in := "Player,Score,Handicap\nAnn,78,8\nBob,82,9\n"

		table, err := ParseCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, []string{"Player", "Score", "Handicap"}, table.Headers)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"Bob", "82", "9"}, table.Rows[1])
	})

	t.Run("ragged rows are tolerated", func(t *testing.T) {
		in := "Player,Score,Putts\nAnn,78,30\nBob,82\n"

		table, err := ParseCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"Bob", "82"}, table.Rows[1])
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.Error(t, err)
	})
}

// TestTableFromRows tests the raw row split shared by both parsers
func TestTableFromRows(t *testing.T) {
	t.Run("all rows blank", func(t *testing.T) {
		_, err := tableFromRows([][]string{{"", ""}, {" ", ""}})
		assert.Error(t, err)
	})

	t.Run("header and rows", func(t *testing.T) {
		table, err := tableFromRows([][]string{
			{"Player", "Score"},
			{"Ann", "78"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.Table{
			Headers: []string{"Player", "Score"},
			Rows:    [][]string{{"Ann", "78"}},
		}, table)
	})
}
