package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Transport selectors.
const (
	TransportLive    = "live"
	TransportFixture = "fixture"
)

// Session backend selectors.
const (
	SessionBackendBolt     = "bolt"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
	SessionBackendMemory   = "memory"
)

type Config struct {
	Env string

	API     APIConfig
	Session SessionConfig

	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Export   ExportConfig
	Fixture  FixtureConfig
}

// APIConfig describes how the client reaches the calendar service.
type APIConfig struct {
	BaseURL   string
	Cohort    string
	Timeout   time.Duration
	Transport string
}

// SessionConfig selects where the session is persisted between runs.
type SessionConfig struct {
	Backend   string
	Path      string
	Namespace string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig controls where rendered calendar exports are written.
type ExportConfig struct {
	Dir string
}

// FixtureConfig tunes the fixture-backed server.
type FixtureConfig struct {
	Port           int
	TokenSecret    string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL:   strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Cohort:    v.GetString("COHORT"),
		Timeout:   parseDuration(v.GetString("HTTP_TIMEOUT"), 0),
		Transport: strings.ToLower(v.GetString("TRANSPORT")),
	}

	cfg.Session = SessionConfig{
		Backend:   strings.ToLower(v.GetString("SESSION_BACKEND")),
		Path:      v.GetString("SESSION_PATH"),
		Namespace: v.GetString("SESSION_NAMESPACE"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	cfg.Fixture = FixtureConfig{
		Port:        v.GetInt("FIXTURE_PORT"),
		TokenSecret: v.GetString("FIXTURE_TOKEN_SECRET"),
		TokenTTL:    parseDuration(v.GetString("FIXTURE_TOKEN_TTL"), 24*time.Hour),
	}
	for _, origin := range strings.Split(v.GetString("FIXTURE_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.Fixture.AllowedOrigins = append(cfg.Fixture.AllowedOrigins, origin)
		}
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("COHORT", "fall2025")
	v.SetDefault("HTTP_TIMEOUT", "")
	v.SetDefault("TRANSPORT", TransportLive)

	v.SetDefault("SESSION_BACKEND", SessionBackendBolt)
	v.SetDefault("SESSION_PATH", "./.tsma/session.db")
	v.SetDefault("SESSION_NAMESPACE", "tsma")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tsma_client")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 2)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("FIXTURE_PORT", 8080)
	v.SetDefault("FIXTURE_TOKEN_SECRET", "dev_fixture_secret")
	v.SetDefault("FIXTURE_TOKEN_TTL", "24h")
	v.SetDefault("FIXTURE_ALLOWED_ORIGINS", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
