// internal/config/config.go
package config

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"finreview/internal/util"
	"finreview/pkg/db" // Import db package for its Config struct
)

// Supported values of DATA_SOURCE.
const (
	DataSourceMemory   = "memory"
	DataSourcePostgres = "postgres"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	DataSource string
	LogLevel   string
	Seed       SeedConfig
	DB         db.Config
}

// SeedConfig controls how the in-memory store is populated.
// Zero values select the fixed built-in dataset.
type SeedConfig struct {
	SyntheticEmployees   int
	SyntheticPerEmployee int
}

// Synthetic reports whether a generated dataset was requested.
func (s SeedConfig) Synthetic() bool {
	return s.SyntheticEmployees > 0 && s.SyntheticPerEmployee > 0
}

// LoadConfig loads configuration from a .env file (if any) and environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !util.IsError(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("data_source", DataSourceMemory)
	v.SetDefault("log_level", "info")
	v.SetDefault("seed_synthetic_employees", 0)
	v.SetDefault("seed_synthetic_per_employee", 0)
	v.SetDefault("db_host", "localhost") // Default to localhost for local development
	v.SetDefault("db_port", 5432)        // Default PostgreSQL port
	v.SetDefault("db_user", "user")
	v.SetDefault("db_password", "password")
	v.SetDefault("db_name", "reviewdb")
	v.SetDefault("db_sslmode", "disable")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	source := strings.ToLower(strings.TrimSpace(v.GetString("data_source")))
	switch source {
	case DataSourceMemory, DataSourcePostgres:
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: %w", source, util.ErrUnknownDataSource)
	}

	dbPort, err := parsePositiveInt(v, "db_port")
	if err != nil {
		return nil, err
	}
	employees, err := parseNonNegativeInt(v, "seed_synthetic_employees")
	if err != nil {
		return nil, err
	}
	perEmployee, err := parseNonNegativeInt(v, "seed_synthetic_per_employee")
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		DataSource: source,
		LogLevel:   v.GetString("log_level"),
		Seed: SeedConfig{
			SyntheticEmployees:   employees,
			SyntheticPerEmployee: perEmployee,
		},
		DB: db.Config{
			Host:     v.GetString("db_host"),
			Port:     dbPort,
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
	}, nil
}

func parsePositiveInt(v *viper.Viper, key string) (int, error) {
	n, err := parseNonNegativeInt(v, key)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", strings.ToUpper(key))
	}
	return n, nil
}

func parseNonNegativeInt(v *viper.Viper, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", strings.ToUpper(key), err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", strings.ToUpper(key))
	}
	return n, nil
}
