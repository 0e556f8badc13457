package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/index"
	"github.com/ziadkadry99/docfind/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Render the corpus as a static HTML site",
	Long: `Renders every indexed document to HTML with syntax-highlighted code
blocks, plus an index page and a search-index.json for client-side search.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().StringP("output", "o", "site", "output directory")
	siteCmd.Flags().String("name", "Knowledge Base", "site name shown in the header")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputDir, _ := cmd.Flags().GetString("output")
	siteName, _ := cmd.Flags().GetString("name")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := index.LoadStore(ctx, database)
	if err != nil {
		if errors.Is(err, index.ErrEmptyCorpus) {
			return fmt.Errorf("no index found: %w\nRun `docfind index` first", err)
		}
		return err
	}

	pages, err := site.NewGenerator(store, outputDir, siteName).Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Wrote %d pages to %s\n", pages, outputDir)
	return nil
}
