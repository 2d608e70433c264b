package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream UpstreamConfig
	Board    BoardConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Export   ExportConfig
}

// UpstreamConfig locates the scheduling API this gateway mirrors.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BoardConfig tunes the synchronization engine.
type BoardConfig struct {
	// SavedStatusTTL and ErrorStatusTTL control how long the transient
	// "saved"/"error" indicators linger before decaying back to idle.
	SavedStatusTTL time.Duration
	ErrorStatusTTL time.Duration

	// Refresh queue settings for the post-confirm re-fetch of derived
	// collections (conflicts, analytics).
	RefreshWorkers    int
	RefreshBufferSize int
	RefreshRetries    int
	RefreshRetryDelay time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	RefTTL   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig controls board export rendering.
type ExportConfig struct {
	Title string
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 10*time.Second),
	}

	cfg.Board = BoardConfig{
		SavedStatusTTL:    parseDuration(v.GetString("BOARD_SAVED_STATUS_TTL"), 1500*time.Millisecond),
		ErrorStatusTTL:    parseDuration(v.GetString("BOARD_ERROR_STATUS_TTL"), 2*time.Second),
		RefreshWorkers:    v.GetInt("BOARD_REFRESH_WORKERS"),
		RefreshBufferSize: v.GetInt("BOARD_REFRESH_BUFFER"),
		RefreshRetries:    v.GetInt("BOARD_REFRESH_RETRIES"),
		RefreshRetryDelay: parseDuration(v.GetString("BOARD_REFRESH_RETRY_DELAY"), time.Second),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		RefTTL:   parseDuration(v.GetString("REDIS_REFDATA_TTL"), 10*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		Title: v.GetString("EXPORT_TITLE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8090)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")

	v.SetDefault("BOARD_SAVED_STATUS_TTL", "1500ms")
	v.SetDefault("BOARD_ERROR_STATUS_TTL", "2s")
	v.SetDefault("BOARD_REFRESH_WORKERS", 1)
	v.SetDefault("BOARD_REFRESH_BUFFER", 8)
	v.SetDefault("BOARD_REFRESH_RETRIES", 2)
	v.SetDefault("BOARD_REFRESH_RETRY_DELAY", "1s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_REFDATA_TTL", "10m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXPORT_TITLE", "InForms Exam Schedule")
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

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
