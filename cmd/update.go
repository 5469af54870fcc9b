// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanxi456/code-stats/internal/gateway"
	"github.com/yanxi456/code-stats/internal/store"
	"github.com/yanxi456/code-stats/internal/usecase"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Computes today's total line count and updates the stats file",
	Long: `Estimates the total number of code lines across all owned, non-fork
repositories (via the code frequency statistics, falling back to language
byte counts) and upserts a record for today's date into the stats file.
Meant to be invoked once per day by a scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		output, _ := cmd.Flags().GetString("output")

		// A missing token is degraded mode, not an error: the run proceeds
		// unauthenticated under GitHub's stricter anonymous rate limits.
		token := resolveToken()
		if token == "" {
			fmt.Fprintln(os.Stderr, "Warning: neither GH_TOKEN nor GITHUB_TOKEN is set, calling the GitHub API unauthenticated (low rate limits).")
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, gateway.DefaultRetryPolicy(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		seriesStore := store.NewFileStore(output, logger)
		aggregator := usecase.NewAggregator(githubGateway, seriesStore, usecase.Config{}, logger)

		if err := aggregator.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to update stats: %v\n", err)
			os.Exit(1)
		}
	},
}

// resolveToken reads the bearer credential from the environment, checking
// GH_TOKEN first and GITHUB_TOKEN second; the first non-empty value wins.
func resolveToken() string {
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringP("output", "o", "stats.json", "Path of the JSON stats file to update")
}
