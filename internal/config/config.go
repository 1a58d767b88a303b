package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/2beens/gymlog/pkg"

	"github.com/BurntSushi/toml"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSqlite   = "sqlite"
)

type Config struct {
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	SentryDSN     string `toml:"-"`
	// storage
	DBDriver         string `toml:"db_driver"`
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresPassword string `toml:"-"`
	SqlitePath       string `toml:"sqlite_path"`
	// domain
	PasswordHashCost      int    `toml:"password_hash_cost"`
	MissingExercisePolicy string `toml:"missing_exercise_policy"`
	// telemetry
	TracingEnabled bool   `toml:"tracing_enabled"`
	PushgatewayURL string `toml:"pushgateway_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config file and returns the config for the given env.
// Secrets are never read from the file, only from the environment.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in [%s]", env, path)
	}

	cfg.applyDefaults(env)
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DBDriver == "" {
		c.DBDriver = DBDriverSqlite
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.PasswordHashCost == 0 {
		c.PasswordHashCost = pkg.DefaultPasswordHashCost
	}
}

func (c *Config) applyEnvOverrides() {
	if dsn := os.Getenv("GYMLOG_SENTRY_DSN"); dsn != "" {
		c.SentryDSN = dsn
	}
	if pass := os.Getenv("GYMLOG_POSTGRES_PASSWORD"); pass != "" {
		c.PostgresPassword = pass
	}
	if host := os.Getenv("GYMLOG_POSTGRES_HOST"); host != "" {
		c.PostgresHost = host
	}
	if path := os.Getenv("GYMLOG_SQLITE_PATH"); path != "" {
		c.SqlitePath = path
	}
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DBDriverPostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return fmt.Errorf("postgres driver needs postgres_host and postgres_db_name")
		}
	case DBDriverSqlite:
		if c.SqlitePath == "" {
			return fmt.Errorf("sqlite driver needs sqlite_path")
		}
	default:
		return fmt.Errorf("unknown db driver: %s", c.DBDriver)
	}
	return nil
}
