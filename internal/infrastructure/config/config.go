// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for catalog configuration.
	DefaultConfigDir = ".catalog"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultEnvFile holds secrets that should not live in config.yaml.
	DefaultEnvFile = ".env"
	// DefaultDatabaseFile is the SQLite file name inside the config directory.
	DefaultDatabaseFile = "catalog.db"
	// DefaultCollection is the Qdrant collection used for entity search.
	DefaultCollection = "catalog_entities"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Embedder EmbedderConfig `yaml:"embedder,omitempty"`
	Qdrant   QdrantConfig   `yaml:"qdrant,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
	Catalog  CatalogConfig  `yaml:"catalog,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL points at an OpenAI-compatible endpoint. Empty uses api.openai.com.
	BaseURL string `yaml:"base_url,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite catalog store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the project directory by Load.
	Path string `yaml:"path,omitempty"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	// Console selects human readable output instead of JSON lines.
	Console bool `yaml:"console,omitempty"`
}

// CatalogConfig describes the local actor performing mutations.
type CatalogConfig struct {
	Actor            string `yaml:"actor,omitempty"`
	ManageGlossaries bool   `yaml:"manage_glossaries,omitempty"`
}

// envOverrides lists the variables that take precedence over config.yaml.
type envOverrides struct {
	OpenAIKey string `env:"OPENAI_API_KEY"`
	QdrantKey string `env:"QDRANT_API_KEY"`
	LogLevel  string `env:"CATALOG_LOG_LEVEL"`
	Actor     string `env:"CATALOG_ACTOR"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: DefaultCollection,
		},
		SQLite: SQLiteConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultDatabaseFile),
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
		Catalog: CatalogConfig{
			Actor:            "urn:li:corpuser:datahub",
			ManageGlossaries: true,
		},
	}
}

// Load loads configuration from the .catalog directory in the given path.
// Variables from .catalog/.env are loaded first and never override the
// process environment.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'catalog init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := loadEnvFile(EnvFilePath(basePath)); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if cfg.SQLite.Path != "" && cfg.SQLite.Path != ":memory:" && !filepath.IsAbs(cfg.SQLite.Path) {
		cfg.SQLite.Path = filepath.Join(basePath, cfg.SQLite.Path)
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading env file: %w", err)
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. API keys from
// the environment only fill in keys missing from the file.
func (c *Config) applyEnvOverrides() error {
	var vars envOverrides
	if err := ParseEnv(&vars); err != nil {
		return err
	}

	if vars.OpenAIKey != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = vars.OpenAIKey
	}
	if vars.QdrantKey != "" && c.Qdrant.APIKey == "" {
		c.Qdrant.APIKey = vars.QdrantKey
	}
	if vars.LogLevel != "" {
		c.Log.Level = strings.ToLower(vars.LogLevel)
	}
	if vars.Actor != "" {
		c.Catalog.Actor = vars.Actor
	}
	return nil
}

// ConfigDir returns the path to the .catalog config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// EnvFilePath returns the path to the optional .env file.
func EnvFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultEnvFile)
}

// Exists checks if a catalog config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
