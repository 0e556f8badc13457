package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/config"
	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/index"
	"github.com/ziadkadry99/docfind/internal/progress"
	"github.com/ziadkadry99/docfind/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Build the search index from the corpus",
	Long: `Walks the corpus directory, ingests every Markdown document, builds the
inverted index, and persists both to the data directory. An existing
index is replaced wholesale.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("embed", false, "also build the semantic vector index (requires OPENAI_API_KEY)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.CorpusDir = args[0]
	}

	raw, err := corpus.Load(corpus.LoaderConfig{
		RootDir: cfg.CorpusDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return fmt.Errorf("loading corpus from %s: %w", cfg.CorpusDir, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Found %d markdown files under %s\n", len(raw), cfg.CorpusDir)
	}

	store := corpus.NewStore()
	if err := store.Ingest(raw); err != nil {
		return fmt.Errorf("ingesting corpus: %w", err)
	}

	reporter := progress.NewReporter()
	reporter.Start(store.Count())
	idx, err := index.BuildWithProgress(store, func(done int, doc corpus.Document) {
		reporter.Update(done, truncate(doc.Title, 40))
	})
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	reporter.Finish()

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := index.Save(ctx, database, store, idx); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	embed, _ := cmd.Flags().GetBool("embed")
	if embed || cfg.Embeddings.Enabled {
		if err := buildVectorIndex(ctx, cfg, store); err != nil {
			return err
		}
	}

	fmt.Printf("Indexed %d documents (%d terms) in %s\n",
		idx.DocCount(), idx.TermCount(), time.Since(start).Round(time.Millisecond))
	return nil
}

// buildVectorIndex embeds the whole corpus and persists the chromem
// snapshot next to the SQLite database.
func buildVectorIndex(ctx context.Context, cfg *config.Config, store *corpus.Store) error {
	embedder, err := createEmbedder(cfg)
	if err != nil {
		return err
	}

	vstore, err := vectordb.NewStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Embedding %d documents with %s...\n", store.Count(), embedder.Name())
	if err := vstore.AddDocuments(ctx, store.All()); err != nil {
		return fmt.Errorf("embedding documents: %w", err)
	}

	if err := vstore.Persist(cfg.DataDir); err != nil {
		return fmt.Errorf("persisting vector store: %w", err)
	}
	return nil
}
