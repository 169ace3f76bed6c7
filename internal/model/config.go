package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Backend kinds.
const (
	BackendSQLite = "sqlite"
	BackendREST   = "rest"
)

// BackendConfig selects and configures the relational data service.
type BackendConfig struct {
	// Kind is either "sqlite" (local database file) or "rest"
	// (hosted PostgREST-compatible service).
	Kind string `mapstructure:"kind" yaml:"kind" env:"TODO_BACKEND"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path" env:"TODO_DB_PATH"`

	// RESTURL is the root URL of the hosted service (e.g. https://xyz.supabase.co).
	RESTURL string `mapstructure:"rest_url" yaml:"rest_url" env:"TODO_REST_URL"`

	// RESTAPIKey is never read from the config file. It comes from the
	// environment or the system keyring.
	RESTAPIKey string `mapstructure:"-" yaml:"-" env:"TODO_REST_API_KEY"`

	RESTTimeoutSec int `mapstructure:"rest_timeout_sec" yaml:"rest_timeout_sec" env:"TODO_REST_TIMEOUT_SEC"`
}

// SessionConfig configures the keyring holding the logged-in user id.
type SessionConfig struct {
	Service string `mapstructure:"service" yaml:"service" env:"TODO_SESSION_SERVICE"`
	FileDir string `mapstructure:"file_dir" yaml:"file_dir" env:"TODO_SESSION_DIR"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	Locale string `mapstructure:"locale" yaml:"locale" env:"TODO_LOCALE"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	LogPath string        `mapstructure:"log_path" yaml:"log_path" env:"TODO_LOG_PATH"`
}

// configDir returns ~/.config/todolist, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "todolist")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todolist/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Backend: BackendConfig{
			Kind:           BackendSQLite,
			SQLitePath:     filepath.Join(dir, "todo.db"),
			RESTTimeoutSec: 30,
		},
		Session: SessionConfig{
			Service: "todolist",
			FileDir: "~/.config/todolist/session",
		},
		Display: DisplayConfig{
			Locale: "en",
		},
		LogPath: filepath.Join(dir, "todo.log"),
	}
}

// RegisterFlags adds the command-line overrides understood by LoadConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", DefaultConfigPath(), "path to the YAML config file")
	fs.String("backend", "", "data backend: sqlite or rest")
	fs.String("db", "", "sqlite database path")
	fs.String("rest-url", "", "root URL of the hosted data service")
	fs.String("locale", "", "UI language: en or id")
	fs.String("log", "", "log file path")
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// then applies environment variables and finally any flags the user set.
// A missing file is not an error; defaults are used instead.
func LoadConfig(path string, flags *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := defaultAppConfig()
	v.SetDefault("backend.kind", def.Backend.Kind)
	v.SetDefault("backend.sqlite_path", def.Backend.SQLitePath)
	v.SetDefault("backend.rest_url", def.Backend.RESTURL)
	v.SetDefault("backend.rest_timeout_sec", def.Backend.RESTTimeoutSec)
	v.SetDefault("session.service", def.Session.Service)
	v.SetDefault("session.file_dir", def.Session.FileDir)
	v.SetDefault("display.locale", def.Display.Locale)
	v.SetDefault("log_path", def.LogPath)

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if _, ok := err.(*os.PathError); !ok && !notFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if flags != nil {
		applyFlags(cfg, flags)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag explicitly set on the command line.
func applyFlags(cfg *AppConfig, flags *pflag.FlagSet) {
	set := func(name string, dst *string) {
		if !flags.Changed(name) {
			return
		}
		if val, err := flags.GetString(name); err == nil {
			*dst = val
		}
	}
	set("backend", &cfg.Backend.Kind)
	set("db", &cfg.Backend.SQLitePath)
	set("rest-url", &cfg.Backend.RESTURL)
	set("locale", &cfg.Display.Locale)
	set("log", &cfg.LogPath)
}

// Validate reports configuration that cannot work.
func (c *AppConfig) Validate() error {
	switch c.Backend.Kind {
	case BackendSQLite:
		if c.Backend.SQLitePath == "" {
			return fmt.Errorf("backend.sqlite_path must be set for the sqlite backend")
		}
	case BackendREST:
		if c.Backend.RESTURL == "" {
			return fmt.Errorf("backend.rest_url must be set for the rest backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)",
			c.Backend.Kind, BackendSQLite, BackendREST)
	}
	if c.Backend.RESTTimeoutSec <= 0 {
		c.Backend.RESTTimeoutSec = 30
	}
	return nil
}
