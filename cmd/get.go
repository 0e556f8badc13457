package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/index"
)

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Print a single document by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().Bool("json", false, "output the document as JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

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

	doc, err := store.Get(id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return fmt.Errorf("no document with id %q", id)
		}
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"id":       doc.ID,
			"category": doc.Category,
			"title":    doc.Title,
			"path":     doc.Path,
			"tags":     doc.Tags,
			"body":     doc.Body,
		})
	}

	fmt.Printf("Title:    %s\n", doc.Title)
	fmt.Printf("Category: %s\n", doc.Category)
	fmt.Printf("Path:     %s\n", doc.Path)
	if len(doc.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(doc.Tags, ", "))
	}
	fmt.Println()
	fmt.Println(doc.Body)
	return nil
}
