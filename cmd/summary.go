package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanxi456/code-stats/internal/store"
	"github.com/yanxi456/code-stats/internal/usecase"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Prints summary statistics over the recorded series",
	Long: `Reads the stats file and prints summary statistics (date span, latest
total, mean/median/min/max, net change) as JSON to standard output.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		output, _ := cmd.Flags().GetString("output")

		series, err := store.NewFileStore(output, logger).Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load stats file: %v\n", err)
			os.Exit(1)
		}

		summary, err := usecase.Summarize(series)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to summarize stats: %v\n", err)
			os.Exit(1)
		}

		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal summary to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringP("output", "o", "stats.json", "Path of the JSON stats file to read")
}
