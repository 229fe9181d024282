package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfsight/pkg/contracts/domain"
)

// TestResolveSchema tests column classification on raw tables
func TestResolveSchema(t *testing.T) {
	tests := []struct {
		name        string
		table       domain.Table
		wantSchema  domain.Schema
		wantErr     bool
		errContains string
	}{
		{
			name: "basic stats table",
			table: domain.Table{
				Headers: []string{"Player", "Avg Score", "Handicap", "Fairways Hit %"},
				Rows: [][]string{
					{"Ann", "78", "8", "62%"},
					{"Bob", "82", "9", "55%"},
				},
			},
			wantSchema: domain.Schema{
				IDColumn: "Player",
				Stats:    []string{"Avg Score", "Handicap", "Fairways Hit %"},
			},
		},
		{
			name: "name column as identifier",
			table: domain.Table{
				Headers: []string{"Full Name", "Score"},
				Rows: [][]string{
					{"Ann", "78"},
					{"Bob", "82"},
				},
			},
			wantSchema: domain.Schema{
				IDColumn: "Full Name",
				Stats:    []string{"Score"},
			},
		},
		{
			name: "tee time and date columns are attributes, not stats",
			table: domain.Table{
				Headers: []string{"Player", "Tee Time", "Round Date", "Score"},
				Rows: [][]string{
					{"Ann", "08:30", "2026-05-01", "78"},
					{"Bob", "13:15", "2026-05-01", "82"},
				},
			},
			wantSchema: domain.Schema{
				IDColumn:      "Player",
				Stats:         []string{"Score"},
				TeeTimeColumn: "Tee Time",
				DateColumn:    "Round Date",
			},
		},
		{
			name: "no identifier column",
			table: domain.Table{
				Headers: []string{"Score", "Handicap"},
				Rows:    [][]string{{"78", "8"}},
			},
			wantErr:     true,
			errContains: "identifier column",
		},
		{
			name: "no numeric statistic columns",
			table: domain.Table{
				Headers: []string{"Player", "Club"},
				Rows: [][]string{
					{"Ann", "Lakeside"},
					{"Bob", "Lakeside"},
				},
			},
			wantErr:     true,
			errContains: "no numeric statistic columns",
		},
		{
			name: "duplicate identifiers",
			table: domain.Table{
				Headers: []string{"Player", "Score"},
				Rows: [][]string{
					{"Ann", "78"},
					{"Ann", "80"},
				},
			},
			wantErr:     true,
			errContains: "duplicate player identifier",
		},
		{
			name: "empty identifier cell",
			table: domain.Table{
				Headers: []string{"Player", "Score"},
				Rows: [][]string{
					{"Ann", "78"},
					{"  ", "80"},
				},
			},
			wantErr:     true,
			errContains: "empty player identifier",
		},
		{
			name: "empty table",
			table: domain.Table{},
			wantErr:     true,
			errContains: "no header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := ResolveSchema(tt.table)
			if tt.wantErr {
				require.Error(t, err)
				var schemaErr *SchemaError
				assert.ErrorAs(t, err, &schemaErr)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSchema, schema)
		})
	}
}

// TestResolveSchemaHoleColumns tests hole/par pairing
func TestResolveSchemaHoleColumns(t *testing.T) {
	t.Run("aligned hole and par columns", func(t *testing.T) {
		table := domain.Table{
			Headers: []string{"Player", "Score", "Hole 1", "Hole 2", "Par 1", "Par 2"},
			Rows: [][]string{
				{"Ann", "78", "4", "5", "4", "4"},
				{"Bob", "82", "5", "4", "4", "4"},
			},
		}
		schema, err := ResolveSchema(table)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hole 1", "Hole 2"}, schema.HoleColumns)
		assert.Equal(t, []string{"Par 1", "Par 2"}, schema.ParColumns)
		assert.Equal(t, []string{"Score"}, schema.Stats,
			"hole and par columns must not leak into stats")
	})

	t.Run("hole columns sorted by number, not header order", func(t *testing.T) {
		table := domain.Table{
			Headers: []string{"Player", "Score", "Hole 10", "Hole 2", "Par 10", "Par 2"},
			Rows: [][]string{
				{"Ann", "78", "4", "5", "4", "4"},
			},
		}
		schema, err := ResolveSchema(table)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hole 2", "Hole 10"}, schema.HoleColumns)
		assert.Equal(t, []string{"Par 2", "Par 10"}, schema.ParColumns)
	})

	t.Run("holes without pars are dropped", func(t *testing.T) {
		table := domain.Table{
			Headers: []string{"Player", "Score", "Hole 1", "Hole 2"},
			Rows: [][]string{
				{"Ann", "78", "4", "5"},
			},
		}
		schema, err := ResolveSchema(table)
		require.NoError(t, err)
		assert.Empty(t, schema.HoleColumns)
		assert.Empty(t, schema.ParColumns)
	})

	t.Run("mismatched hole and par counts are dropped", func(t *testing.T) {
		table := domain.Table{
			Headers: []string{"Player", "Score", "Hole 1", "Hole 2", "Par 1"},
			Rows: [][]string{
				{"Ann", "78", "4", "5", "4"},
			},
		}
		schema, err := ResolveSchema(table)
		require.NoError(t, err)
		assert.Empty(t, schema.HoleColumns)
		assert.Empty(t, schema.ParColumns)
	})
}

// TestColumnIsNumeric tests numeric column detection with messy cells
func TestColumnIsNumeric(t *testing.T) {
	table := domain.Table{
		Headers: []string{"Player", "Driving Distance", "GIR %", "Club", "Empty"},
		Rows: [][]string{
			{"Ann", "1,250", "62%", "Lakeside", ""},
			{"Bob", "", "58%", "Hillcrest", ""},
		},
	}

	assert.True(t, columnIsNumeric(table, 1), "thousands separator parses")
	assert.True(t, columnIsNumeric(table, 2), "percent suffix parses")
	assert.False(t, columnIsNumeric(table, 3), "text column is not numeric")
	assert.False(t, columnIsNumeric(table, 4), "all-empty column is not numeric")
}
