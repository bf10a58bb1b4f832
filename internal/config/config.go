package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidQuestionSource       = errors.New("invalid question source")
)

// Question sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`             // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`               // Telegram API token loaded from environment
	QuestionSource   string  `mapstructure:"question_source"` // where question records come from: file or postgres
	DataDir          string  `mapstructure:"data_dir"`        // directory with the category JSON files
	DB               DB      `mapstructure:"database"`        // database configuration section
	Session          Session `mapstructure:"session"`         // quiz chat lifetime
	Metrics          Metrics `mapstructure:"metrics"`         // Prometheus endpoint
	Log              Log     `mapstructure:"log"`             // log file rotation
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Session controls how long idle quiz chats are kept.
type Session struct {
	IdleTTL     time.Duration `mapstructure:"idle_ttl"`     // chats idle longer than this are evicted
	CleanupSpec string        `mapstructure:"cleanup_spec"` // cron spec of the eviction job
}

// Metrics configures the Prometheus HTTP endpoint.
type Metrics struct {
	Addr string `mapstructure:"addr"` // listen address, empty disables the endpoint
}

// Log configures the optional rotating log file.
type Log struct {
	File       string `mapstructure:"file"` // empty logs to the console only
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads the bot configuration from .env, config files and environment
// variables.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads the configuration for tools that only talk to the
// database. The Telegram token is not required.
func LoadDatabase() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if _, err := cfg.DB.DSN(); err != nil {
		return nil, fmt.Errorf("%w: DATABASE_URL", err)
	}

	return cfg, nil
}

func read() (*Config, error) {
	// Load .env into the process environment; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("question_source", SourceFile)
	v.SetDefault("data_dir", "assets/data")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("session.cleanup_spec", "@every 10m")
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	switch c.QuestionSource {
	case SourceFile:
	case SourcePostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidQuestionSource, c.QuestionSource)
	}

	return nil
}
