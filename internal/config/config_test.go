package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func loadJSON(t *testing.T, content string) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigType("json")
	if err := viper.ReadConfig(bytes.NewBufferString(content)); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", config.Database.URLEnv)
	}

	if config.Seeder.Truncate == nil || !*config.Seeder.Truncate {
		t.Error("Expected truncate to default to true")
	}

	if config.Seeder.Language != "en-US" {
		t.Errorf("Expected language to be 'en-US', got '%s'", config.Seeder.Language)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadJSON(t, `{"database": {"provider": "sqlite"}}`)

	if cfg.Database.Provider != "sqlite" {
		t.Errorf("Expected provider 'sqlite', got '%s'", cfg.Database.Provider)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected url_env default, got '%s'", cfg.Database.URLEnv)
	}
	if cfg.Seeder.Truncate == nil || !*cfg.Seeder.Truncate {
		t.Error("Expected truncate to default to true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.Logging.Level)
	}
}

func TestSeederOptions(t *testing.T) {
	cfg := loadJSON(t, `{
		"seeder": {
			"truncate": false,
			"language": "id-ID",
			"created_at": "2024-01-02T03:04:05Z",
			"faker_seed": 7
		}
	}`)

	opts, err := cfg.SeederOptions()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if opts.Truncate {
		t.Error("Expected truncate to be disabled")
	}
	if opts.Language != "id-ID" {
		t.Errorf("Expected language 'id-ID', got '%s'", opts.Language)
	}
	if !opts.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("Unexpected created_at %v", opts.CreatedAt)
	}
	if !opts.UpdatedAt.IsZero() {
		t.Errorf("Expected zero updated_at, got %v", opts.UpdatedAt)
	}
	if opts.FakerSeed != 7 {
		t.Errorf("Expected faker seed 7, got %d", opts.FakerSeed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unsupported provider", func(c *Config) { c.Database.Provider = "oracle" }, "unsupported database provider"},
		{"empty url env", func(c *Config) { c.Database.URLEnv = "" }, "url_env"},
		{"bad locale", func(c *Config) { c.Seeder.Locale = "??" }, "seeder.locale"},
		{"bad timestamp", func(c *Config) { c.Seeder.UpdatedAt = "yesterday" }, "seeder.updated_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetProvider(t *testing.T) {
	cfg := DefaultConfig()

	tests := map[string]string{
		"postgres://u:p@localhost:5432/app": "postgresql",
		"mysql://u:p@localhost:3306/app":    "mysql",
		"sqlite://./data.sqlite":            "sqlite",
		"./data.db":                         "sqlite",
	}
	for url, want := range tests {
		got, err := cfg.GetProvider(url)
		if err != nil {
			t.Errorf("GetProvider(%q) failed: %v", url, err)
			continue
		}
		if got != want {
			t.Errorf("GetProvider(%q) = %q, want %q", url, got, want)
		}
	}

	cfg.Database.Provider = "mysql"
	if got, _ := cfg.GetProvider("postgres://localhost/app"); got != "mysql" {
		t.Errorf("Expected configured provider to win, got %q", got)
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "TABLESEED_TEST_URL"

	t.Setenv("TABLESEED_TEST_URL", "")
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected error for empty environment variable")
	}

	t.Setenv("TABLESEED_TEST_URL", "sqlite://./x.db")
	url, err := cfg.GetDatabaseURL()
	if err != nil || url != "sqlite://./x.db" {
		t.Errorf("Unexpected result %q, %v", url, err)
	}
}

func TestYAML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Provider = "postgresql"

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"provider: postgresql", "url_env: DATABASE_URL", "truncate: true"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Expected YAML to contain %q:\n%s", want, out)
		}
	}
}

func TestInitializeProject(t *testing.T) {
	tempDir := t.TempDir()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	if IsInitialized() {
		t.Error("Expected project to not be initialized, but it was")
	}

	if err := InitializeProject("sqlite"); err != nil {
		t.Fatalf("Failed to initialize project: %v", err)
	}

	configPath := filepath.Join(tempDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Config file was not created at %s", configPath)
	}
	if !strings.Contains(string(data), `"provider": "sqlite"`) {
		t.Errorf("Expected provider in config file:\n%s", data)
	}

	if !IsInitialized() {
		t.Error("Expected project to be initialized, but it wasn't")
	}

	if err := InitializeProject("sqlite"); err == nil {
		t.Error("Expected second initialization to fail, but it succeeded")
	}
}
