package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.CSVTrim)
	assert.Equal(t, []string{SinkCSV}, cfg.Sinks)
	assert.Equal(t, "account_snapshots", cfg.KafkaTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.HasSink(SinkCSV))
	assert.False(t, cfg.HasSink(SinkKafka))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEDGER_SINKS", "CSV, kafka")
	t.Setenv("LEDGER_KAFKA_BROKERS", "b1:9092,b2:9092")
	t.Setenv("LEDGER_CSV_TRIM", "true")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, []string{SinkCSV, SinkKafka}, cfg.Sinks)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.CSVTrim)
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_LOG_LEVEL=debug\nLEDGER_SQLITE_PATH=/tmp/x.db\n"), 0o600))
	// t.Setenv registers the restore; godotenv only fills variables that are unset.
	t.Setenv("LEDGER_LOG_LEVEL", "")
	os.Unsetenv("LEDGER_LOG_LEVEL")
	t.Setenv("LEDGER_SQLITE_PATH", "/from/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/from/env.db", cfg.SQLitePath, "environment overrides .env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "postgres without dsn", cfg: Config{Sinks: []string{SinkPostgres}}, want: "LEDGER_POSTGRES_DSN"},
		{name: "sqlite without path", cfg: Config{Sinks: []string{SinkSQLite}}, want: "LEDGER_SQLITE_PATH"},
		{name: "kafka without brokers", cfg: Config{Sinks: []string{SinkKafka}, KafkaTopic: "t"}, want: "LEDGER_KAFKA_BROKERS"},
		{name: "kafka without topic", cfg: Config{Sinks: []string{SinkKafka}, KafkaBrokers: []string{"b"}}, want: "LEDGER_KAFKA_TOPIC"},
		{name: "unknown", cfg: Config{Sinks: []string{"s3"}}, want: "unknown sink"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}

	assert.NoError(t, Config{Sinks: []string{SinkCSV, SinkSQLite}, SQLitePath: "x.db"}.Validate())
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("LEDGER_CSV_TRIM", "not-a-bool")
	var cfg Config
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
