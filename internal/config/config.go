package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Rana718/tableseed/pkg/seeder"
	"github.com/spf13/viper"
	"github.com/xo/dburl"
	"gopkg.in/yaml.v3"
)

const (
	ConfigName     = "tableseed.config"
	ConfigFileName = ConfigName + ".json"
)

type Config struct {
	Version  string   `json:"version" mapstructure:"version" yaml:"version"`
	Database Database `json:"database" mapstructure:"database" yaml:"database"`
	Seeder   Seeder   `json:"seeder" mapstructure:"seeder" yaml:"seeder"`
	Logging  Logging  `json:"logging" mapstructure:"logging" yaml:"logging"`
}

type Database struct {
	Provider string `json:"provider,omitempty" mapstructure:"provider" yaml:"provider,omitempty"`
	URLEnv   string `json:"url_env" mapstructure:"url_env" yaml:"url_env"`
}

type Seeder struct {
	Truncate  *bool  `json:"truncate,omitempty" mapstructure:"truncate" yaml:"truncate,omitempty"`
	Locale    string `json:"locale,omitempty" mapstructure:"locale" yaml:"locale,omitempty"`
	Language  string `json:"language,omitempty" mapstructure:"language" yaml:"language,omitempty"`
	CreatedAt string `json:"created_at,omitempty" mapstructure:"created_at" yaml:"created_at,omitempty"` // RFC 3339
	UpdatedAt string `json:"updated_at,omitempty" mapstructure:"updated_at" yaml:"updated_at,omitempty"` // RFC 3339
	FakerSeed int64  `json:"faker_seed,omitempty" mapstructure:"faker_seed" yaml:"faker_seed,omitempty"`
}

type Logging struct {
	Level string `json:"level" mapstructure:"level" yaml:"level"`
}

var supportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

func DefaultConfig() *Config {
	truncate := true
	return &Config{
		Version: "1",
		Database: Database{
			URLEnv: "DATABASE_URL",
		},
		Seeder: Seeder{
			Truncate: &truncate,
			Language: seeder.DefaultLanguage,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = defaults.Database.URLEnv
	}
	if cfg.Seeder.Truncate == nil {
		cfg.Seeder.Truncate = defaults.Seeder.Truncate
	}
	if cfg.Seeder.Language == "" {
		cfg.Seeder.Language = defaults.Seeder.Language
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// GetProvider returns the configured provider, or the one implied by the URL scheme.
func (c *Config) GetProvider(dbURL string) (string, error) {
	if c.Database.Provider != "" {
		return c.Database.Provider, nil
	}

	if strings.HasPrefix(dbURL, "sqlite://") || strings.HasPrefix(dbURL, "sqlite3://") {
		return "sqlite", nil
	}
	if !strings.Contains(dbURL, "://") &&
		(strings.HasSuffix(dbURL, ".db") || strings.HasSuffix(dbURL, ".sqlite") || strings.HasSuffix(dbURL, ".sqlite3")) {
		return "sqlite", nil
	}

	u, err := dburl.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("cannot infer database provider from URL: %w", err)
	}
	switch u.Driver {
	case "postgres", "pgx":
		return "postgresql", nil
	case "mysql":
		return "mysql", nil
	case "sqlite3", "sqlite", "moderncsqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", u.Driver)
	}
}

func (c *Config) Validate() error {
	if c.Database.Provider != "" {
		supported := false
		for _, provider := range supportedProviders {
			if c.Database.Provider == provider {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
		}
	}

	if c.Database.URLEnv == "" {
		return fmt.Errorf("database.url_env cannot be empty")
	}

	if c.Seeder.Locale != "" {
		if _, err := seeder.NormalizeLocale(c.Seeder.Locale); err != nil {
			return fmt.Errorf("seeder.locale: %w", err)
		}
	}
	if c.Seeder.Language != "" {
		if _, err := seeder.NormalizeLocale(c.Seeder.Language); err != nil {
			return fmt.Errorf("seeder.language: %w", err)
		}
	}

	if _, err := parseTimestamp(c.Seeder.CreatedAt); err != nil {
		return fmt.Errorf("seeder.created_at: %w", err)
	}
	if _, err := parseTimestamp(c.Seeder.UpdatedAt); err != nil {
		return fmt.Errorf("seeder.updated_at: %w", err)
	}

	return nil
}

// SeederOptions maps the seeder section onto seeder.Options.
func (c *Config) SeederOptions() (seeder.Options, error) {
	opts := seeder.DefaultOptions()
	if c.Seeder.Truncate != nil {
		opts.Truncate = *c.Seeder.Truncate
	}
	opts.Locale = c.Seeder.Locale
	if c.Seeder.Language != "" {
		opts.Language = c.Seeder.Language
	}
	opts.FakerSeed = c.Seeder.FakerSeed

	var err error
	if opts.CreatedAt, err = parseTimestamp(c.Seeder.CreatedAt); err != nil {
		return opts, fmt.Errorf("seeder.created_at: %w", err)
	}
	if opts.UpdatedAt, err = parseTimestamp(c.Seeder.UpdatedAt); err != nil {
		return opts, fmt.Errorf("seeder.updated_at: %w", err)
	}
	return opts, nil
}

func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// InitializeProject writes a default config file for provider into the working directory.
func InitializeProject(provider string) error {
	if IsInitialized() {
		return fmt.Errorf("%s already exists", ConfigFileName)
	}

	cfg := DefaultConfig()
	cfg.Database.Provider = provider
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigFileName, append(data, '\n'), 0644)
}

func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}
