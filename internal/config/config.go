package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	View     ViewConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	Level string
}

const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
)

type DataConfig struct {
	Source  string
	CSVPath string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type ViewConfig struct {
	MaxLimit int
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

type envReader struct {
	missing []string
	invalid []string
}

func (e *envReader) req(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		e.missing = append(e.missing, key)
	}
	return v
}

func (e *envReader) opt(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (e *envReader) optDefault(key, def string) string {
	if v := e.opt(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) optInt(key string, def int) int {
	raw := e.opt(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return v
}

func (e *envReader) optBool(key string, def bool) bool {
	raw := e.opt(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return v
}

func (e *envReader) optDuration(key string, def time.Duration) time.Duration {
	raw := e.opt(key)
	if raw == "" {
		return def
	}
	if v, err := time.ParseDuration(raw); err == nil {
		return v
	}
	// bare integers are seconds
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	e.invalid = append(e.invalid, key)
	return def
}

func (e *envReader) err() error {
	if len(e.missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(e.missing, ", "))
	}
	if len(e.invalid) > 0 {
		return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(e.invalid, ", "))
	}
	return nil
}

// database reads DB_*. The connection keys are required only when
// required is set.
func (e *envReader) database(required bool) DatabaseConfig {
	get := e.opt
	if required {
		get = e.req
	}
	return DatabaseConfig{
		DBHost:     get("DB_HOST"),
		DBPort:     get("DB_PORT"),
		DBName:     get("DB_NAME"),
		DBUser:     get("DB_USER"),
		DBPassword: e.opt("DB_PASSWORD"),
		DBSSLMode:  e.optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        e.optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(e.optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(e.optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   e.optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   e.optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: e.optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}
}

func Load() (Config, error) {
	e := &envReader{}
	cfg := Config{}

	cfg.App = AppConfig{
		AppName:     e.req("APP_NAME"),
		Environment: e.req("APP_ENV"),
		HTTPPort:    e.req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		Level: e.optDefault("LOG_LEVEL", "info"),
	}

	cfg.Data = DataConfig{
		Source:  strings.ToLower(e.optDefault("DATA_SOURCE", DataSourceCSV)),
		CSVPath: e.optDefault("DATA_CSV_PATH", "cleaned_data.csv"),
	}
	switch cfg.Data.Source {
	case DataSourceCSV, DataSourcePostgres:
	default:
		e.invalid = append(e.invalid, "DATA_SOURCE")
	}

	cfg.Database = e.database(cfg.Data.Source == DataSourcePostgres)

	cfg.Redis = RedisConfig{
		Enabled:  e.optBool("REDIS_ENABLED", false),
		Host:     e.optDefault("REDIS_HOST", "localhost"),
		Port:     e.optDefault("REDIS_PORT", "6379"),
		Password: e.opt("REDIS_PASSWORD"),
		DB:       e.optInt("REDIS_DB", 0),
		TTL:      e.optDuration("REDIS_TTL", 600*time.Second),
	}

	cfg.View = ViewConfig{
		MaxLimit: e.optInt("VIEW_MAX_LIMIT", 50),
	}
	if cfg.View.MaxLimit <= 0 {
		e.invalid = append(e.invalid, "VIEW_MAX_LIMIT")
	}

	if err := e.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadImporter reads the settings the CSV importer needs. The database
// keys are always required and the HTTP keys are not read.
func LoadImporter() (Config, error) {
	e := &envReader{}
	cfg := Config{
		App: AppConfig{
			AppName:     e.optDefault("APP_NAME", "career-insights-importer"),
			Environment: e.optDefault("APP_ENV", "development"),
		},
		Log:      LogConfig{Level: e.optDefault("LOG_LEVEL", "info")},
		Data:     DataConfig{Source: DataSourcePostgres},
		Database: e.database(true),
	}

	if err := e.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
