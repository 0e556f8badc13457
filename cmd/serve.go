package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/history"
	"github.com/ziadkadry99/docfind/internal/index"
	"github.com/ziadkadry99/docfind/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search index over HTTP",
	Long: `Starts an HTTP server exposing search, document lookup and category
listing. POST /api/reindex rebuilds the index from the corpus on disk
and swaps it in without interrupting in-flight queries.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if allowAll, _ := cmd.Flags().GetBool("allow-all-origins"); allowAll {
		cfg.Server.AllowAll = true
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
	holder := index.NewHolder(docs, idx)

	// Reindex walks the corpus again, persists the new generation, and
	// hands the fresh snapshot to the server for swapping.
	reindex := func(ctx context.Context) (*corpus.Store, *index.Index, error) {
		store, newIdx, err := buildFromCorpus(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := index.Save(ctx, database, store, newIdx); err != nil {
			return nil, nil, fmt.Errorf("persisting index: %w", err)
		}
		return store, newIdx, nil
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAll,
	}, holder, history.NewStore(database), reindex)

	fmt.Fprintf(os.Stderr, "docfind serving %d documents on :%d\n", idx.DocCount(), cfg.Server.Port)
	return srv.Start(ctx)
}
