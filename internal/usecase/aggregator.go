// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yanxi456/code-stats/internal/domain"
	"github.com/yanxi456/code-stats/internal/gateway"
)

// defaultBytesPerLine is the rough conversion used when a repository's line
// count has to be estimated from language byte counts.
const defaultBytesPerLine = 50

// SeriesStore abstracts the persisted time series.
type SeriesStore interface {
	Load() (domain.Series, error)
	Save(domain.Series) error
}

// Config carries the aggregator's tunables so tests can inject their own.
type Config struct {
	// BytesPerLine converts language byte counts to an approximate line
	// count in the fallback path. Zero means the default of 50.
	BytesPerLine int
}

// Aggregator is the use case for building today's total-line estimate and
// merging it into the persisted series. Repositories are visited one at a
// time, in list order; per-repository failures degrade to a fallback or
// zero contribution instead of aborting the run.
type Aggregator struct {
	fetcher gateway.Fetcher
	store   SeriesStore
	config  Config
	logger  *log.Logger
	now     func() time.Time
}

// contributionStrategy computes one repository's line-count contribution.
// Strategies are tried in order; the first one that succeeds wins.
type contributionStrategy struct {
	name string
	fn   func(ctx context.Context, repo domain.Repository) (int, error)
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, store SeriesStore, config Config, logger *log.Logger) *Aggregator {
	if config.BytesPerLine <= 0 {
		config.BytesPerLine = defaultBytesPerLine
	}
	return &Aggregator{
		fetcher: fetcher,
		store:   store,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// Run performs one full update: compute today's total across all owned
// non-fork repositories and upsert it into the stats file. Only repository
// enumeration and the final write can fail the run.
func (a *Aggregator) Run(ctx context.Context) error {
	total, repos, err := a.ComputeTotal(ctx)
	if err != nil {
		return err
	}
	if repos == 0 {
		a.logger.Println("No owned non-fork repositories found, leaving the stats file untouched.")
		return nil
	}

	today := a.now().UTC().Format(domain.DateLayout)
	series, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load stats series: %w", err)
	}
	series = series.Upsert(today, total)
	if err := a.store.Save(series); err != nil {
		return fmt.Errorf("failed to save stats series: %w", err)
	}
	a.logger.Printf("Recorded %d total lines for %s.\n", total, today)
	return nil
}

// ComputeTotal sums the per-repository contributions sequentially and
// returns the total together with the number of repositories visited.
// The total is deliberately not clamped: net code-frequency deltas can be
// negative, so the estimate may shrink day over day.
func (a *Aggregator) ComputeTotal(ctx context.Context) (int, int, error) {
	repos, err := a.fetcher.ListOwnedRepos(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to enumerate repositories: %w", err)
	}

	total := 0
	for _, repo := range repos {
		contribution := a.contribution(ctx, repo)
		a.logger.Printf("Repository %s contributes %d lines.\n", repo.FullName(), contribution)
		total += contribution
	}
	a.logger.Printf("Estimated total across %d repositories: %d lines.\n", len(repos), total)
	return total, len(repos), nil
}

// contribution runs the strategy chain for one repository: code-frequency
// net delta first, language-byte estimate second, zero if both fail.
func (a *Aggregator) contribution(ctx context.Context, repo domain.Repository) int {
	for _, strategy := range a.strategies() {
		n, err := strategy.fn(ctx, repo)
		if err == nil {
			return n
		}
		if errors.Is(err, gateway.ErrStatsUnavailable) {
			a.logger.Printf("Repository %s: %s unavailable, trying next estimate.\n", repo.FullName(), strategy.name)
			continue
		}
		a.logger.Printf("Repository %s: %s failed (%v), trying next estimate.\n", repo.FullName(), strategy.name, err)
	}
	a.logger.Printf("Repository %s: no estimate available, counting 0 lines.\n", repo.FullName())
	return 0
}

func (a *Aggregator) strategies() []contributionStrategy {
	return []contributionStrategy{
		{
			name: "code frequency",
			fn: func(ctx context.Context, repo domain.Repository) (int, error) {
				weeks, err := a.fetcher.FetchCodeFrequency(ctx, repo)
				if err != nil {
					return 0, err
				}
				return domain.NetDelta(weeks), nil
			},
		},
		{
			name: "language bytes",
			fn: func(ctx context.Context, repo domain.Repository) (int, error) {
				langs, err := a.fetcher.FetchLanguages(ctx, repo)
				if err != nil {
					return 0, err
				}
				byteSum := 0
				for _, b := range langs {
					byteSum += b
				}
				return byteSum / a.config.BytesPerLine, nil
			},
		},
	}
}
