// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finreview/internal/util"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DATA_SOURCE", "LOG_LEVEL", "SEED_SYNTHETIC_EMPLOYEES", "SEED_SYNTHETIC_PER_EMPLOYEE", "DB_HOST", "DB_PORT", "DB_NAME"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DataSourceMemory, cfg.DataSource)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Seed.Synthetic())
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "reviewdb", cfg.DB.DBName)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_SYNTHETIC_EMPLOYEES", "3")
	t.Setenv("SEED_SYNTHETIC_PER_EMPLOYEE", "7")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DataSourcePostgres, cfg.DataSource)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Seed.Synthetic())
	assert.Equal(t, 3, cfg.Seed.SyntheticEmployees)
	assert.Equal(t, 7, cfg.Seed.SyntheticPerEmployee)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown data source", key: "DATA_SOURCE", value: "mongo"},
		{name: "non numeric port", key: "DB_PORT", value: "54x"},
		{name: "zero port", key: "DB_PORT", value: "0"},
		{name: "negative seed", key: "SEED_SYNTHETIC_EMPLOYEES", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}

	t.Run("unknown data source is detectable", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "mongo")
		_, err := LoadConfig()
		assert.ErrorIs(t, err, util.ErrUnknownDataSource)
	})
}
