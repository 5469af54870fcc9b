package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSeries_Upsert uses a table-driven approach to verify the
// one-record-per-date and ascending-order invariants.
func TestSeries_Upsert(t *testing.T) {
	testCases := []struct {
		name     string
		series   Series
		date     string
		total    int
		expected Series
	}{
		{
			name:     "append to empty series",
			series:   Series{},
			date:     "2024-01-01",
			total:    100,
			expected: Series{{Date: "2024-01-01", TotalLines: 100}},
		},
		{
			name:     "replace existing date in place",
			series:   Series{{Date: "2024-01-01", TotalLines: 100}},
			date:     "2024-01-01",
			total:    150,
			expected: Series{{Date: "2024-01-01", TotalLines: 150}},
		},
		{
			name: "append keeps ascending order",
			series: Series{
				{Date: "2024-01-01", TotalLines: 100},
				{Date: "2024-01-03", TotalLines: 120},
			},
			date:  "2024-01-02",
			total: 110,
			expected: Series{
				{Date: "2024-01-01", TotalLines: 100},
				{Date: "2024-01-02", TotalLines: 110},
				{Date: "2024-01-03", TotalLines: 120},
			},
		},
		{
			name: "unsorted input self-heals",
			series: Series{
				{Date: "2024-02-01", TotalLines: 200},
				{Date: "2024-01-01", TotalLines: 100},
			},
			date:  "2024-01-15",
			total: 150,
			expected: Series{
				{Date: "2024-01-01", TotalLines: 100},
				{Date: "2024-01-15", TotalLines: 150},
				{Date: "2024-02-01", TotalLines: 200},
			},
		},
		{
			name:     "negative total is preserved, not clamped",
			series:   Series{{Date: "2024-01-01", TotalLines: 100}},
			date:     "2024-01-02",
			total:    -40,
			expected: Series{{Date: "2024-01-01", TotalLines: 100}, {Date: "2024-01-02", TotalLines: -40}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.series.Upsert(tc.date, tc.total)
			assert.Equal(t, tc.expected, result)
		})
	}
}

// Two upserts for the same date must leave exactly one record holding the
// later value.
func TestSeries_Upsert_LastWriteWins(t *testing.T) {
	s := Series{}
	s = s.Upsert("2024-06-01", 100)
	s = s.Upsert("2024-06-01", 250)

	assert.Equal(t, Series{{Date: "2024-06-01", TotalLines: 250}}, s)
}

func TestNetDelta(t *testing.T) {
	testCases := []struct {
		name     string
		weeks    []WeeklyChange
		expected int
	}{
		{
			name:     "no weeks",
			weeks:    nil,
			expected: 0,
		},
		{
			name: "deletions arrive as negative numbers",
			weeks: []WeeklyChange{
				{Week: 1704067200, Additions: 100, Deletions: -40},
				{Week: 1704672000, Additions: 20, Deletions: -10},
			},
			expected: 70,
		},
		{
			name: "shrinking repository yields a negative delta",
			weeks: []WeeklyChange{
				{Week: 1704067200, Additions: 10, Deletions: -50},
			},
			expected: -40,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NetDelta(tc.weeks))
		})
	}
}
