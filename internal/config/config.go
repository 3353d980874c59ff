package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dotcommander/aeoscore/internal/kv"
	"github.com/dotcommander/aeoscore/internal/scoring"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config represents the aeoscore configuration
type Config struct {
	Format   string         `mapstructure:"format"`
	Output   string         `mapstructure:"output"`
	Quiet    bool           `mapstructure:"quiet"`
	Verbose  bool           `mapstructure:"verbose"`
	LogLevel string         `mapstructure:"logLevel"`
	Store    StoreConfig    `mapstructure:"store"`
	Keywords KeywordsConfig `mapstructure:"keywords"`
	Serve    ServeConfig    `mapstructure:"serve"`
}

// StoreConfig selects where evidence history is kept
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

// KeywordsConfig overrides the content scorer keyword sets
type KeywordsConfig struct {
	Summary []string `mapstructure:"summary"`
	CTA     []string `mapstructure:"cta"`
}

// ServeConfig configures the share-snapshot server
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
	// Rate limits snapshot creation in requests per second; 0 disables it.
	Rate float64 `mapstructure:"rate"`
	// AllowedOrigin is the CORS origin; "*" allows any.
	AllowedOrigin string `mapstructure:"allowedOrigin"`
}

// ConfigFiles are looked up in the working directory, first match wins.
var ConfigFiles = []string{".aeoscorerc.json", ".aeoscorerc.yaml", ".aeoscorerc.yml"}

const dataDir = "~/.aeoscore"

// LoadConfig loads configuration from defaults, the config file, the
// environment and bound flags.
func LoadConfig() (*Config, error) {
	viper.SetDefault("format", "console")
	viper.SetDefault("output", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("logLevel", "warn")
	viper.SetDefault("store.backend", kv.BackendFile)
	viper.SetDefault("store.path", "")
	viper.SetDefault("store.key", "__evidenceV1")
	viper.SetDefault("keywords.summary", scoring.DefaultSummaryKeywords)
	viper.SetDefault("keywords.cta", scoring.DefaultCTAKeywords)
	viper.SetDefault("serve.addr", ":3001")
	viper.SetDefault("serve.rate", 0)
	viper.SetDefault("serve.allowedOrigin", "*")

	for _, path := range ConfigFiles {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// AEOSCORE_STORE_BACKEND -> store.backend
	viper.SetEnvPrefix("AEOSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	path, err := storePath(config.Store)
	if err != nil {
		return nil, err
	}
	config.Store.Path = path

	return &config, nil
}

// storePath expands ~ and fills in the per-backend default location.
func storePath(store StoreConfig) (string, error) {
	path := store.Path
	if path == "" {
		switch store.Backend {
		case kv.BackendSQLite:
			path = filepath.Join(dataDir, "history.db")
		case kv.BackendFile:
			path = filepath.Join(dataDir, "history")
		default:
			return "", nil
		}
	}
	if path == ":memory:" || store.Backend == kv.BackendPostgres {
		return path, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("error expanding store path %q: %w", path, err)
	}
	return expanded, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	switch config.Format {
	case "console", "compact", "json", "markdown":
	default:
		return fmt.Errorf("invalid format: %s. Must be 'console', 'compact', 'json', or 'markdown'", config.Format)
	}

	switch config.Store.Backend {
	case kv.BackendMemory, kv.BackendFile, kv.BackendSQLite:
	case kv.BackendPostgres:
		if config.Store.Path == "" {
			return fmt.Errorf("store path must be a connection URL for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s. Must be 'memory', 'file', 'sqlite', or 'postgres'", config.Store.Backend)
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s. Must be 'debug', 'info', 'warn', or 'error'", config.LogLevel)
	}

	if config.Store.Key == "" {
		return fmt.Errorf("store key must not be empty")
	}

	if config.Serve.Addr == "" {
		return fmt.Errorf("serve address must not be empty")
	}

	if config.Serve.Rate < 0 {
		return fmt.Errorf("serve rate must not be negative: %v", config.Serve.Rate)
	}

	return nil
}
