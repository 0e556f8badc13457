package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/config"
	"github.com/ziadkadry99/docfind/internal/history"
	"github.com/ziadkadry99/docfind/internal/index"
	"github.com/ziadkadry99/docfind/internal/search"
	"github.com/ziadkadry99/docfind/internal/vectordb"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Runs a ranked keyword search against the persisted index. Zero results
is a success; an empty query or an unbuilt index is an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("query", "q", "", "query text (alternative to the positional argument)")
	searchCmd.Flags().String("category", "", "restrict results to one category folder")
	searchCmd.Flags().StringArray("tag", nil, "restrict results to documents with any of these tags (repeatable)")
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("semantic", false, "use the semantic vector index instead of keyword search")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var query string
	if len(args) == 1 {
		query = args[0]
	}
	if flagQuery, _ := cmd.Flags().GetString("query"); flagQuery != "" {
		query = flagQuery
	}

	category, _ := cmd.Flags().GetString("category")
	tags, _ := cmd.Flags().GetStringArray("tag")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	semantic, _ := cmd.Flags().GetBool("semantic")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if semantic {
		return runSemanticSearch(ctx, cfg, query, category, limit, jsonOutput)
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

	filter := search.Filter{Category: category, Tags: tags}

	start := time.Now()
	results, err := search.New(docs, idx).Search(ctx, query, filter, limit)
	if err != nil {
		return err
	}

	hist := history.NewStore(database)
	if err := hist.Record(ctx, history.Entry{
		Query:       query,
		Category:    category,
		Tags:        tags,
		Limit:       limit,
		ResultCount: len(results),
		Duration:    time.Since(start),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording search history: %v\n", err)
	}

	if jsonOutput {
		return printResultsJSON(results)
	}
	printResultsTable(results)
	return nil
}

// runSemanticSearch queries the chromem vector index instead of the
// inverted index.
func runSemanticSearch(ctx context.Context, cfg *config.Config, query, category string, limit int, jsonOutput bool) error {
	embedder, err := createEmbedder(cfg)
	if err != nil {
		return err
	}

	vstore, err := vectordb.NewStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}
	if err := vstore.Load(cfg.DataDir); err != nil {
		return fmt.Errorf("loading vector store: %w\nRun `docfind index --embed` first", err)
	}

	hits, err := vstore.Search(ctx, query, limit, category)
	if err != nil {
		return fmt.Errorf("semantic search: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results:\n\n", len(hits))
	for i, h := range hits {
		fmt.Printf("  %d. [%.1f%%] %s\n", i+1, h.Similarity*100, h.Title)
		fmt.Printf("     %s  (%s)\n\n", h.Path, h.ID)
	}
	return nil
}

type resultJSON struct {
	Rank     int      `json:"rank"`
	Score    float64  `json:"score"`
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Tags     []string `json:"tags,omitempty"`
}

func printResultsJSON(results []search.Result) error {
	out := make([]resultJSON, 0, len(results))
	for i, r := range results {
		out = append(out, resultJSON{
			Rank:     i + 1,
			Score:    r.Score,
			ID:       r.Document.ID,
			Category: r.Document.Category,
			Title:    r.Document.Title,
			Path:     r.Document.Path,
			Tags:     r.Document.Tags,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printResultsTable(results []search.Result) {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return
	}

	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("  %d. [%.4f] %s\n", i+1, r.Score, r.Document.Title)
		detail := fmt.Sprintf("%s  (%s)", r.Document.Path, r.Document.ID)
		if len(r.Document.Tags) > 0 {
			detail += "  tags: " + strings.Join(r.Document.Tags, ", ")
		}
		fmt.Printf("     %s\n\n", detail)
	}
}
