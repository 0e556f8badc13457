package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docfind! Let's configure your knowledge base.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Corpus directory.
	corpusPrompt := promptui.Prompt{
		Label:   "Corpus directory (folder tree of Markdown documents)",
		Default: defaults.CorpusDir,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("corpus directory must not be empty")
			}
			if info, err := os.Stat(input); err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a directory", input)
			}
			return nil
		},
	}
	corpusDir, err := corpusPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("corpus dir: %w", err)
	}

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (index database and caches)",
		Default: defaults.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Default result limit.
	limitPrompt := promptui.Prompt{
		Label:   "Default result limit",
		Default: strconv.Itoa(defaults.DefaultLimit),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n <= 0 {
				return fmt.Errorf("limit must be a positive integer")
			}
			return nil
		},
	}
	limitStr, err := limitPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default limit: %w", err)
	}
	limit, _ := strconv.Atoi(limitStr)

	// 4. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := DefaultExcludes
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	// 5. Semantic search.
	semanticPrompt := promptui.Select{
		Label: "Enable semantic search (requires OPENAI_API_KEY)",
		Items: []string{"no", "yes"},
	}
	semanticIdx, _, err := semanticPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("semantic selection: %w", err)
	}

	cfg := &Config{
		CorpusDir:    corpusDir,
		DataDir:      dataDir,
		Include:      defaults.Include,
		Exclude:      exclude,
		DefaultLimit: limit,
		Server:       defaults.Server,
		Embeddings: EmbeddingsConfig{
			Enabled: semanticIdx == 1,
			Model:   defaults.Embeddings.Model,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s\n", path)
	fmt.Println("Run `docfind index` to build the search index.")
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
