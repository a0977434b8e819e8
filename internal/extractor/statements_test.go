package extractor

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatementSheet_Header(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		validate func(t *testing.T, s *statementSheet, err error)
	}{
		{
			name: "title cell naming a month is not the header",
			rows: [][]string{
				{"December 2025"},
				{"", "Nov", "Dec"},
				{"Revenue", "950000", "1000000"},
			},
			validate: func(t *testing.T, s *statementSheet, err error) {
				require.NoError(t, err)
				assert.Equal(t, []string{"Revenue"}, s.labels)
				assert.Equal(t, map[time.Month]int{time.November: 1, time.December: 2}, s.columns)
			},
		},
		{
			name: "row naming the most months wins",
			rows: [][]string{
				{"Report", "Dec"},
				{"", "Oct", "Nov", "Dec"},
				{"Revenue", "1", "2", "3"},
			},
			validate: func(t *testing.T, s *statementSheet, err error) {
				require.NoError(t, err)
				assert.Len(t, s.columns, 3)
				assert.Equal(t, []int{3}, s.rowNums)
			},
		},
		{
			name: "single month sheet",
			rows: [][]string{
				{"", "Jan"},
				{"Revenue", "890000"},
			},
			validate: func(t *testing.T, s *statementSheet, err error) {
				require.NoError(t, err)
				assert.True(t, s.hasMonth(time.January))
			},
		},
		{
			name: "months stored as Excel dates",
			rows: [][]string{
				{"Account", "45962", "45992"},
				{"Revenue", "950000", "1000000"},
			},
			validate: func(t *testing.T, s *statementSheet, err error) {
				require.NoError(t, err)
				assert.Equal(t, map[time.Month]int{time.November: 1, time.December: 2}, s.columns)
				assert.Equal(t, []string{"Revenue"}, s.labels)
			},
		},
		{
			name: "month end dates",
			rows: [][]string{
				{"", "46022"},
				{"Revenue", "1000000"},
			},
			validate: func(t *testing.T, s *statementSheet, err error) {
				require.NoError(t, err)
				assert.True(t, s.hasMonth(time.December))
			},
		},
		{
			name: "no month anywhere",
			rows: [][]string{
				{"Account", "Total"},
				{"Revenue", "1000000"},
			},
			validate: func(t *testing.T, _ *statementSheet, err error) {
				var missing *MissingRequiredInputError
				require.True(t, errors.As(err, &missing), err)
				assert.Equal(t, "month header row", missing.Label)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseStatementSheet("financial_statements.xlsx", SheetProfitAndLoss, tt.rows)
			tt.validate(t, s, err)
		})
	}
}

func TestSerialMonth(t *testing.T) {
	m, ok := serialMonth("45992")
	assert.True(t, ok)
	assert.Equal(t, time.December, m)

	for _, raw := range []string{"45993", "45992.5", "1000000", "Dec", ""} {
		_, ok := serialMonth(raw)
		assert.False(t, ok, raw)
	}
}
