package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SQLiteConfig points at a SQLite recipe table.
type SQLiteConfig struct {
	DSN   string `yaml:"dsn" validate:"required"`
	Table string `yaml:"table"`
}

// CorpusConfig lists where recipes are loaded from. Files are merged in order,
// followed by the SQLite table when configured.
type CorpusConfig struct {
	Files  []string      `yaml:"files"`
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// TokenizerConfig controls how ingredient text is split into terms.
type TokenizerConfig struct {
	MinTokenLength int    `yaml:"min_token_length" validate:"gte=1"`
	Stopwords      string `yaml:"stopwords" validate:"oneof=none english"`
}

// IndexConfig tunes index construction.
type IndexConfig struct {
	Workers int `yaml:"workers" validate:"gte=1"`
}

// RankerConfig sets the default number of suggestions.
type RankerConfig struct {
	TopK int `yaml:"top_k" validate:"gte=1"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus        CorpusConfig      `yaml:"corpus"`
	Tokenizer     TokenizerConfig   `yaml:"tokenizer"`
	Index         IndexConfig       `yaml:"index"`
	Ranker        RankerConfig      `yaml:"ranker"`
	Server        ServerConfig      `yaml:"server"`
	Log           LogConfig         `yaml:"log"`
	Substitutions map[string]string `yaml:"substitutions,omitempty"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, Validate(cfg)
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/recipematch/config.yaml.
// If neither exists, it writes defaults to ~/.config/recipematch/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, Validate(cfg)
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var validate = validator.New()

// Validate checks field constraints.
func Validate(cfg *AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "recipematch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Corpus:    CorpusConfig{Files: []string{"archive/train.json", "archive/test.json"}},
		Tokenizer: TokenizerConfig{MinTokenLength: 2, Stopwords: "none"},
		Index:     IndexConfig{Workers: 4},
		Ranker:    RankerConfig{TopK: 5},
		Server:    ServerConfig{Addr: ":8080"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Tokenizer.MinTokenLength == 0 {
		cfg.Tokenizer.MinTokenLength = def.Tokenizer.MinTokenLength
	}
	if cfg.Tokenizer.Stopwords == "" {
		cfg.Tokenizer.Stopwords = def.Tokenizer.Stopwords
	}
	if cfg.Index.Workers == 0 {
		cfg.Index.Workers = def.Index.Workers
	}
	if cfg.Ranker.TopK == 0 {
		cfg.Ranker.TopK = def.Ranker.TopK
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Corpus.SQLite != nil && cfg.Corpus.SQLite.Table == "" {
		cfg.Corpus.SQLite.Table = "recipes"
	}
}

// applyEnv lets RECIPEMATCH_* variables (typically from a .env file) win over YAML.
func applyEnv(cfg *AppConfig) {
	if files := GetStringEnv("RECIPEMATCH_CORPUS_FILES", ""); files != "" {
		cfg.Corpus.Files = splitList(files)
	}
	if dsn := GetStringEnv("RECIPEMATCH_SQLITE_DSN", ""); dsn != "" {
		if cfg.Corpus.SQLite == nil {
			cfg.Corpus.SQLite = &SQLiteConfig{Table: "recipes"}
		}
		cfg.Corpus.SQLite.DSN = dsn
	}
	cfg.Index.Workers = GetIntEnv("RECIPEMATCH_INDEX_WORKERS", cfg.Index.Workers)
	cfg.Ranker.TopK = GetIntEnv("RECIPEMATCH_TOP_K", cfg.Ranker.TopK)
	cfg.Server.Addr = GetStringEnv("RECIPEMATCH_SERVER_ADDR", cfg.Server.Addr)
	cfg.Log.Level = GetStringEnv("RECIPEMATCH_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = GetStringEnv("RECIPEMATCH_LOG_FORMAT", cfg.Log.Format)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
