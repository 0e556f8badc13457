package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/history"
	"github.com/ziadkadry99/docfind/internal/index"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and index statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("history", 5, "number of recent searches to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	historyLimit, _ := cmd.Flags().GetInt("history")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	docs, idx, err := loadSnapshot(ctx, database)
	if err != nil {
		if errors.Is(err, index.ErrEmptyCorpus) {
			return fmt.Errorf("no index found: %w\nRun `docfind index` first", err)
		}
		return err
	}

	fmt.Printf("Documents:       %d\n", idx.DocCount())
	fmt.Printf("Distinct terms:  %d\n", idx.TermCount())
	fmt.Printf("Avg body tokens: %.1f\n", idx.AvgDocLength())
	fmt.Println("\nCategories:")
	for _, c := range docs.Categories() {
		name := c.Name
		if name == "" {
			name = "(uncategorized)"
		}
		fmt.Printf("  %-24s %d\n", name, c.Documents)
	}

	entries, err := history.NewStore(database).Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("loading search history: %w", err)
	}
	if len(entries) > 0 {
		fmt.Println("\nRecent searches:")
		for _, e := range entries {
			fmt.Printf("  %s  %-30q %d hit(s) in %s\n",
				e.CreatedAt.Format("2006-01-02 15:04"), e.Query, e.ResultCount, e.Duration)
		}
	}
	return nil
}
