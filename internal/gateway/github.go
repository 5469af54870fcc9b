// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/yanxi456/code-stats/internal/domain"
)

// ErrStatsUnavailable reports that a repository's code-frequency data could
// not be obtained: either GitHub was still computing it after the retry
// budget was exhausted, or the request failed outright. Callers fall back
// to the languages endpoint instead of failing the run.
var ErrStatsUnavailable = errors.New("code frequency statistics unavailable")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListOwnedRepos(ctx context.Context) ([]domain.Repository, error)
	FetchCodeFrequency(ctx context.Context, repo domain.Repository) ([]domain.WeeklyChange, error)
	FetchLanguages(ctx context.Context, repo domain.Repository) (map[string]int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	retry      RetryPolicy
	sleep      func(time.Duration)
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token is allowed: the gateway then talks to the API
// unauthenticated, which works but is subject to much stricter rate limits.
func NewGitHubGateway(token string, retry RetryPolicy, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}
	return &GitHubGateway{
		restClient: github.NewClient(httpClient),
		retry:      retry,
		sleep:      time.Sleep,
		logger:     logger,
	}, nil
}

// ListOwnedRepos enumerates every repository owned by the authenticated
// user, paginating until exhaustion and dropping forks. The list endpoint
// has no fork filter, so forks are removed client-side.
func (g *GitHubGateway) ListOwnedRepos(ctx context.Context) ([]domain.Repository, error) {
	g.logger.Println("Fetching owned repositories (type=owner)...")
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Type:        "owner",
		Sort:        "full_name",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var repos []domain.Repository
	for {
		page, resp, err := g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		for _, r := range page {
			if r.GetFork() {
				continue
			}
			repos = append(repos, domain.Repository{
				Owner: r.GetOwner().GetLogin(),
				Name:  r.GetName(),
			})
		}
		if len(page) == 0 || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Found %d owned non-fork repositories.\n", len(repos))
	return repos, nil
}

// FetchCodeFrequency fetches a repository's weekly addition/deletion
// statistics. While GitHub answers 202 the statistics are still being
// computed and the call is retried with a fixed delay; once the retry
// budget is spent, or on any other failure, ErrStatsUnavailable is
// returned. HTTP 204 means an empty repository and yields an empty week
// list without retrying.
func (g *GitHubGateway) FetchCodeFrequency(ctx context.Context, repo domain.Repository) ([]domain.WeeklyChange, error) {
	attempt := 0
	for {
		stats, resp, err := g.restClient.Repositories.ListCodeFrequency(ctx, repo.Owner, repo.Name)
		if err != nil {
			var accepted *github.AcceptedError
			if errors.As(err, &accepted) {
				attempt++
				if !g.retry.ShouldRetry(attempt) {
					g.logger.Printf("Stats for %s still pending after %d retries, giving up.\n", repo.FullName(), g.retry.MaxRetries)
					return nil, fmt.Errorf("stats for %s still pending: %w", repo.FullName(), ErrStatsUnavailable)
				}
				g.logger.Printf("Stats for %s are being computed (HTTP 202), retrying %d/%d in %s...\n", repo.FullName(), attempt, g.retry.MaxRetries, g.retry.Delay)
				g.sleep(g.retry.Delay)
				continue
			}
			g.logger.Printf("Failed to fetch code frequency for %s: %v\n", repo.FullName(), err)
			return nil, fmt.Errorf("code frequency for %s: %w", repo.FullName(), ErrStatsUnavailable)
		}
		if resp != nil && resp.StatusCode == http.StatusNoContent {
			g.logger.Printf("Repository %s has no code frequency data (HTTP 204), counting 0 lines.\n", repo.FullName())
			return []domain.WeeklyChange{}, nil
		}
		weeks := make([]domain.WeeklyChange, 0, len(stats))
		for _, w := range stats {
			change := domain.WeeklyChange{
				Additions: w.GetAdditions(),
				Deletions: w.GetDeletions(),
			}
			if ts := w.Week; ts != nil {
				change.Week = ts.Unix()
			}
			weeks = append(weeks, change)
		}
		return weeks, nil
	}
}

// FetchLanguages fetches a repository's language byte counts. It is only
// used as a fallback when code frequency data is unavailable.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, repo domain.Repository) (map[string]int, error) {
	langs, _, err := g.restClient.Repositories.ListLanguages(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages for %s: %w", repo.FullName(), err)
	}
	return langs, nil
}
