package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yanxi456/code-stats/internal/domain"
)

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name     string
		series   domain.Series
		expected SeriesSummary
	}{
		{
			name:     "empty series yields a zero summary",
			series:   domain.Series{},
			expected: SeriesSummary{},
		},
		{
			name:   "single record",
			series: domain.Series{{Date: "2024-01-01", TotalLines: 100}},
			expected: SeriesSummary{
				Records:     1,
				FirstDate:   "2024-01-01",
				LastDate:    "2024-01-01",
				LatestTotal: 100,
				MinTotal:    100,
				MaxTotal:    100,
				MeanTotal:   100,
				MedianTotal: 100,
				NetChange:   0,
			},
		},
		{
			name: "growing then shrinking series",
			series: domain.Series{
				{Date: "2024-01-01", TotalLines: 100},
				{Date: "2024-01-02", TotalLines: 300},
				{Date: "2024-01-03", TotalLines: 200},
			},
			expected: SeriesSummary{
				Records:     3,
				FirstDate:   "2024-01-01",
				LastDate:    "2024-01-03",
				LatestTotal: 200,
				MinTotal:    100,
				MaxTotal:    300,
				MeanTotal:   200,
				MedianTotal: 200,
				NetChange:   100,
			},
		},
		{
			name: "negative totals are reported as-is",
			series: domain.Series{
				{Date: "2024-01-01", TotalLines: 50},
				{Date: "2024-01-02", TotalLines: -150},
			},
			expected: SeriesSummary{
				Records:     2,
				FirstDate:   "2024-01-01",
				LastDate:    "2024-01-02",
				LatestTotal: -150,
				MinTotal:    -150,
				MaxTotal:    50,
				MeanTotal:   -50,
				MedianTotal: -50,
				NetChange:   -200,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := Summarize(tc.series)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, summary)
		})
	}
}
