package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/yanxi456/code-stats/internal/domain"
)

// SeriesSummary describes the recorded series for quick inspection.
type SeriesSummary struct {
	Records     int     `json:"records"`
	FirstDate   string  `json:"first_date,omitempty"`
	LastDate    string  `json:"last_date,omitempty"`
	LatestTotal int     `json:"latest_total"`
	MinTotal    float64 `json:"min_total"`
	MaxTotal    float64 `json:"max_total"`
	MeanTotal   float64 `json:"mean_total"`
	MedianTotal float64 `json:"median_total"`
	NetChange   int     `json:"net_change"`
}

// Summarize computes summary statistics over a series. The series is
// expected to be sorted ascending by date, which Load/Upsert guarantee.
// An empty series yields a zero summary, not an error.
func Summarize(series domain.Series) (SeriesSummary, error) {
	if len(series) == 0 {
		return SeriesSummary{}, nil
	}

	totals := make([]float64, len(series))
	for i, r := range series {
		totals[i] = float64(r.TotalLines)
	}

	min, err := stats.Min(totals)
	if err != nil {
		return SeriesSummary{}, fmt.Errorf("failed to compute min: %w", err)
	}
	max, err := stats.Max(totals)
	if err != nil {
		return SeriesSummary{}, fmt.Errorf("failed to compute max: %w", err)
	}
	mean, err := stats.Mean(totals)
	if err != nil {
		return SeriesSummary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(totals)
	if err != nil {
		return SeriesSummary{}, fmt.Errorf("failed to compute median: %w", err)
	}

	first := series[0]
	last := series[len(series)-1]
	return SeriesSummary{
		Records:     len(series),
		FirstDate:   first.Date,
		LastDate:    last.Date,
		LatestTotal: last.TotalLines,
		MinTotal:    min,
		MaxTotal:    max,
		MeanTotal:   mean,
		MedianTotal: median,
		NetChange:   last.TotalLines - first.TotalLines,
	}, nil
}
