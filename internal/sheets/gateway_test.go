package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeStart(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sheet    string
		column   string
		startRow int
		wantErr  bool
	}{
		{name: "column range with start row", input: "Sheet1!A2:A", sheet: "Sheet1", column: "A", startRow: 2},
		{name: "single cell", input: "Books!F17", sheet: "Books", column: "F", startRow: 17},
		{name: "bare column anchors at row 1", input: "Sheet1!E:E", sheet: "Sheet1", column: "E", startRow: 1},
		{name: "double letter column", input: "Sheet1!AB10:AB", sheet: "Sheet1", column: "AB", startRow: 10},
		{name: "lowercase column normalized", input: "Sheet1!a2:a", sheet: "Sheet1", column: "A", startRow: 2},
		{name: "missing separator", input: "A2:A", wantErr: true},
		{name: "empty sheet name", input: "!A2:A", wantErr: true},
		{name: "no column letter", input: "Sheet1!2:2", wantErr: true},
		{name: "row zero", input: "Sheet1!A0:A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, column, startRow, err := ParseRangeStart(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.sheet, sheet)
			assert.Equal(t, tt.column, column)
			assert.Equal(t, tt.startRow, startRow)
		})
	}
}

func TestBatchBody(t *testing.T) {
	updates := []Update{
		{Range: "Sheet1!F2", Value: "fiction"},
		{Range: "Sheet1!F3", Value: "non-fiction"},
	}

	body := batchBody(updates)

	assert.Equal(t, "RAW", body.ValueInputOption)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Sheet1!F2", body.Data[0].Range)
	assert.Equal(t, [][]interface{}{{"fiction"}}, body.Data[0].Values)
	assert.Equal(t, "Sheet1!F3", body.Data[1].Range)
	assert.Equal(t, [][]interface{}{{"non-fiction"}}, body.Data[1].Values)
}
