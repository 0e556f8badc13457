package config

// DefaultExcludes are glob patterns skipped during corpus loading by default.
var DefaultExcludes = []string{
	"README.md",
	"CONTRIBUTING.md",
	"node_modules/**",
	".git/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CorpusDir:    ".",
		DataDir:      ".docfind",
		Include:      []string{"**/*.md"},
		Exclude:      DefaultExcludes,
		DefaultLimit: 10,
		Server: ServerConfig{
			Port: 4810,
		},
		Embeddings: EmbeddingsConfig{
			Enabled: false,
			Model:   "text-embedding-3-small",
		},
	}
}
