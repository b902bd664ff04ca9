package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StoreConfig selects where the mailbox collection comes from.
type StoreConfig struct {
	// Driver is "memory" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the sqlite database file, used by the sqlite driver.
	Path string `mapstructure:"path" yaml:"path"`

	// Seed loads the sample messages into an empty store.
	Seed bool `mapstructure:"seed" yaml:"seed"`
}

// ComposerConfig holds the limits and timings of the composer.
type ComposerConfig struct {
	MaxFiles        int           `mapstructure:"max_files" yaml:"max_files"`
	MaxSizeBytes    int64         `mapstructure:"max_size_bytes" yaml:"max_size_bytes"`
	SuggestionDelay time.Duration `mapstructure:"suggestion_delay" yaml:"suggestion_delay"`
}

// Config is the top-level application configuration.
type Config struct {
	// SelfAddress is the user's own address; the sent view matches it.
	SelfAddress string         `mapstructure:"self_address" yaml:"self_address"`
	LogFile     string         `mapstructure:"log_file" yaml:"log_file"`
	Store       StoreConfig    `mapstructure:"store" yaml:"store"`
	Composer    ComposerConfig `mapstructure:"composer" yaml:"composer"`
}

// DefaultDir returns ~/.config/mailshell.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mailshell")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := DefaultDir()
	return &Config{
		SelfAddress: "you@company.com",
		LogFile:     filepath.Join(dir, "mailshell.log"),
		Store: StoreConfig{
			Driver: "memory",
			Path:   filepath.Join(dir, "mailshell.db"),
			Seed:   true,
		},
		Composer: ComposerConfig{
			MaxFiles:        10,
			MaxSizeBytes:    25 * 1024 * 1024,
			SuggestionDelay: 2 * time.Second,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("self_address", d.SelfAddress)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.seed", d.Store.Seed)
	v.SetDefault("composer.max_files", d.Composer.MaxFiles)
	v.SetDefault("composer.max_size_bytes", d.Composer.MaxSizeBytes)
	v.SetDefault("composer.suggestion_delay", d.Composer.SuggestionDelay)
}

// Load reads configuration from the YAML file at path, with MAILSHELL_* environment
// overrides (for example MAILSHELL_STORE_DRIVER). A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("mailshell")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	if _, err := mail.ParseAddress(c.SelfAddress); err != nil {
		return fmt.Errorf("self_address %q: %w", c.SelfAddress, err)
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return errors.New("store.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	if c.Composer.MaxFiles <= 0 {
		return fmt.Errorf("composer.max_files must be positive, got %d", c.Composer.MaxFiles)
	}
	if c.Composer.MaxSizeBytes <= 0 {
		return fmt.Errorf("composer.max_size_bytes must be positive, got %d", c.Composer.MaxSizeBytes)
	}
	if c.Composer.SuggestionDelay < 0 {
		return fmt.Errorf("composer.suggestion_delay must not be negative, got %s", c.Composer.SuggestionDelay)
	}
	return nil
}

// Save writes the configuration to a YAML file at path, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("self_address", cfg.SelfAddress)
	v.Set("log_file", cfg.LogFile)
	v.Set("store.driver", cfg.Store.Driver)
	v.Set("store.path", cfg.Store.Path)
	v.Set("store.seed", cfg.Store.Seed)
	v.Set("composer.max_files", cfg.Composer.MaxFiles)
	v.Set("composer.max_size_bytes", cfg.Composer.MaxSizeBytes)
	v.Set("composer.suggestion_delay", cfg.Composer.SuggestionDelay.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
