package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Sink names accepted in LEDGER_SINKS.
const (
	SinkCSV      = "csv"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
	SinkKafka    = "kafka"
)

// Config is the runtime configuration shared by the ledger CLI and server.
type Config struct {
	LogLevel  string `env:"LEDGER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LEDGER_LOG_FORMAT" envDefault:"json"`

	// CSVTrim accepts input fields padded with whitespace instead of dropping the row.
	CSVTrim bool `env:"LEDGER_CSV_TRIM" envDefault:"false"`

	Sinks        []string `env:"LEDGER_SINKS" envDefault:"csv" envSeparator:","`
	PostgresDSN  string   `env:"LEDGER_POSTGRES_DSN"`
	SQLitePath   string   `env:"LEDGER_SQLITE_PATH"`
	KafkaBrokers []string `env:"LEDGER_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"LEDGER_KAFKA_TOPIC" envDefault:"account_snapshots"`

	HTTPAddr string `env:"LEDGER_HTTP_ADDR" envDefault:":8080"`
}

// Load reads an optional .env file from the given paths (default ".env") and then
// parses the environment. Variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	for i, sink := range cfg.Sinks {
		cfg.Sinks[i] = strings.ToLower(strings.TrimSpace(sink))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that every selected sink has the settings it needs.
func (c Config) Validate() error {
	for _, sink := range c.Sinks {
		switch sink {
		case SinkCSV:
		case SinkPostgres:
			if c.PostgresDSN == "" {
				return fmt.Errorf("sink %s: LEDGER_POSTGRES_DSN is required", sink)
			}
		case SinkSQLite:
			if c.SQLitePath == "" {
				return fmt.Errorf("sink %s: LEDGER_SQLITE_PATH is required", sink)
			}
		case SinkKafka:
			if len(c.KafkaBrokers) == 0 {
				return fmt.Errorf("sink %s: LEDGER_KAFKA_BROKERS is required", sink)
			}
			if c.KafkaTopic == "" {
				return fmt.Errorf("sink %s: LEDGER_KAFKA_TOPIC is required", sink)
			}
		default:
			return fmt.Errorf("unknown sink %q", sink)
		}
	}
	return nil
}

// HasSink reports whether name was selected in LEDGER_SINKS.
func (c Config) HasSink(name string) bool {
	for _, sink := range c.Sinks {
		if sink == name {
			return true
		}
	}
	return false
}
