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

const (
	TokenStoreFile  = "file"
	TokenStoreRedis = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	AcademyAPI AcademyAPIConfig
	Session    SessionConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Invoices   InvoiceConfig
	Exports    ExportsConfig
	Metrics    MetricsConfig
}

// AcademyAPIConfig points the gateway at the remote academy backend.
type AcademyAPIConfig struct {
	BaseURL string
	// Timeout of zero leaves outbound calls bounded only by the inbound request context.
	Timeout time.Duration
}

// SessionConfig controls where the operator token is persisted between restarts.
type SessionConfig struct {
	Store       string
	Dir         string
	Key         string
	SyncOnStart bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// InvoiceConfig tunes the monthly invoice run.
type InvoiceConfig struct {
	MonthlyFee float64
	DueDay     int
}

type ExportsConfig struct {
	Dir string
}

type MetricsConfig struct {
	Enabled bool
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

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.AcademyAPI = AcademyAPIConfig{
		BaseURL: strings.TrimRight(v.GetString("ACADEMY_API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("ACADEMY_API_TIMEOUT"), 0),
	}

	cfg.Session = SessionConfig{
		Store:       strings.ToLower(v.GetString("TOKEN_STORE")),
		Dir:         v.GetString("TOKEN_DIR"),
		Key:         v.GetString("TOKEN_KEY"),
		SyncOnStart: v.GetBool("SYNC_ON_START"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Invoices = InvoiceConfig{
		MonthlyFee: v.GetFloat64("INVOICE_MONTHLY_FEE"),
		DueDay:     v.GetInt("INVOICE_DUE_DAY"),
	}
	if cfg.Invoices.DueDay < 1 || cfg.Invoices.DueDay > 28 {
		cfg.Invoices.DueDay = 5
	}

	cfg.Exports = ExportsConfig{Dir: v.GetString("EXPORTS_DIR")}
	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ACADEMY_API_BASE_URL", "http://127.0.0.1:8000")
	v.SetDefault("ACADEMY_API_TIMEOUT", "")

	v.SetDefault("TOKEN_STORE", TokenStoreFile)
	v.SetDefault("TOKEN_DIR", "./.session")
	v.SetDefault("TOKEN_KEY", "authToken")
	v.SetDefault("SYNC_ON_START", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("INVOICE_MONTHLY_FEE", 500000)
	v.SetDefault("INVOICE_DUE_DAY", 5)

	v.SetDefault("EXPORTS_DIR", "./exports")
	v.SetDefault("ENABLE_METRICS", true)
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
