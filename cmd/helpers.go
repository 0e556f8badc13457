package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ziadkadry99/docfind/internal/config"
	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/db"
	"github.com/ziadkadry99/docfind/internal/embeddings"
	"github.com/ziadkadry99/docfind/internal/index"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docfind init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the SQLite database under the configured data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.DatabasePath(), err)
	}
	return database, nil
}

// loadSnapshot restores the persisted store and index from the database.
func loadSnapshot(ctx context.Context, database *db.DB) (*corpus.Store, *index.Index, error) {
	store, err := index.LoadStore(ctx, database)
	if err != nil {
		return nil, nil, err
	}
	idx, err := index.LoadIndex(ctx, database, store)
	if err != nil {
		return nil, nil, err
	}
	return store, idx, nil
}

// buildFromCorpus walks the configured corpus dir, ingests it, and
// builds a fresh index.
func buildFromCorpus(cfg *config.Config) (*corpus.Store, *index.Index, error) {
	raw, err := corpus.Load(corpus.LoaderConfig{
		RootDir: cfg.CorpusDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("loading corpus from %s: %w", cfg.CorpusDir, err)
	}

	store := corpus.NewStore()
	if err := store.Ingest(raw); err != nil {
		return nil, nil, fmt.Errorf("ingesting corpus: %w", err)
	}

	idx, err := index.Build(store)
	if err != nil {
		return nil, nil, fmt.Errorf("building index: %w", err)
	}
	return store, idx, nil
}

// createEmbedder builds the OpenAI embedder used by the semantic path.
func createEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for semantic search")
	}
	return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.Embeddings.Model)), nil
}

// truncate shortens s for table output.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
