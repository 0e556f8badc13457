package config

// Config is the top-level docfind configuration, corresponding to .docfind.yml.
type Config struct {
	CorpusDir    string           `yaml:"corpus_dir" koanf:"corpus_dir"`
	DataDir      string           `yaml:"data_dir" koanf:"data_dir"`
	Include      []string         `yaml:"include" koanf:"include"`
	Exclude      []string         `yaml:"exclude" koanf:"exclude"`
	DefaultLimit int              `yaml:"default_limit" koanf:"default_limit"`
	Server       ServerConfig     `yaml:"server" koanf:"server"`
	Embeddings   EmbeddingsConfig `yaml:"embeddings" koanf:"embeddings"`
}

// ServerConfig holds `docfind serve` settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"` // allow all CORS origins (dev mode)
}

// EmbeddingsConfig holds the optional semantic-search settings.
type EmbeddingsConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Model   string `yaml:"model" koanf:"model"`
}
