package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	dbpkg "github.com/yungbote/mindwell-backend/internal/data/db"
	"github.com/yungbote/mindwell-backend/internal/platform/envutil"
)

const (
	ReportStorageLocal       = "local"
	ReportStorageGCS         = "gcs"
	ReportStorageGCSEmulator = "gcs_emulator"
)

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY is required")
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is required")
)

type Config struct {
	LogMode     string
	Port        string
	ServiceName string
	Environment string
	CORSOrigins []string

	Database dbpkg.Config

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	GeminiTimeout    time.Duration
	GeminiMaxRetries int

	ReportWindowDays    int
	ReportStorageMode   string
	ReportLocalDir      string
	ReportBucket        string
	StorageEmulatorHost string

	RedisAddr            string
	ChatRateLimitPerMin  int
	MetricsEnabled       bool
	MetricsAddr          string
	OtelEnabled          bool
	OtelEndpoint         string
	OtelHeaders          string
	OtelInsecure         bool
	OtelSampleRatio      float64
	ServiceVersion       string
	SeedQuestionsOnStart bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_mode", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("service_name", "mindwell-api")
	v.SetDefault("environment", "development")
	v.SetDefault("cors_allowed_origins", "")

	v.SetDefault("db_driver", dbpkg.DriverPostgres)
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", "5432")
	v.SetDefault("postgres_user", "postgres")
	v.SetDefault("postgres_password", "")
	v.SetDefault("postgres_name", "mindwell")
	v.SetDefault("postgres_sslmode", "disable")
	v.SetDefault("sqlite_path", "mindwell.db")

	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("access_token_ttl", 3600)

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
	v.SetDefault("gemini_base_url", "")
	v.SetDefault("gemini_timeout_seconds", 30)
	v.SetDefault("gemini_max_retries", 2)

	v.SetDefault("report_window_days", 30)
	v.SetDefault("report_storage_mode", ReportStorageLocal)
	v.SetDefault("report_local_dir", "reports")
	v.SetDefault("report_gcs_bucket_name", "")
	v.SetDefault("storage_emulator_host", "")

	v.SetDefault("redis_addr", "")
	v.SetDefault("chat_rate_limit_per_minute", 20)
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_insecure", true)
	v.SetDefault("otel_sample_ratio", 1.0)
	v.SetDefault("service_version", "dev")
	v.SetDefault("seed_questions_on_start", true)
}

// LoadConfig reads the environment, layered over the optional YAML file named by
// MINDWELL_CONFIG. Secrets have no defaults. The Gemini key is checked by
// ValidateServe since only the API server talks to the model.
func LoadConfig() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := envutil.String("MINDWELL_CONFIG", ""); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
	}
	return configFrom(v)
}

func configFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogMode:     v.GetString("log_mode"),
		Port:        strings.TrimSpace(v.GetString("port")),
		ServiceName: v.GetString("service_name"),
		Environment: v.GetString("environment"),
		CORSOrigins: splitList(v.GetString("cors_allowed_origins")),

		Database: dbpkg.Config{
			Driver:           v.GetString("db_driver"),
			PostgresHost:     v.GetString("postgres_host"),
			PostgresPort:     v.GetString("postgres_port"),
			PostgresUser:     v.GetString("postgres_user"),
			PostgresPassword: v.GetString("postgres_password"),
			PostgresName:     v.GetString("postgres_name"),
			PostgresSSLMode:  v.GetString("postgres_sslmode"),
			SQLitePath:       v.GetString("sqlite_path"),
		},

		JWTSecretKey:   strings.TrimSpace(v.GetString("jwt_secret_key")),
		AccessTokenTTL: time.Duration(v.GetInt("access_token_ttl")) * time.Second,

		GeminiAPIKey:     strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:      v.GetString("gemini_model"),
		GeminiBaseURL:    v.GetString("gemini_base_url"),
		GeminiTimeout:    time.Duration(v.GetInt("gemini_timeout_seconds")) * time.Second,
		GeminiMaxRetries: v.GetInt("gemini_max_retries"),

		ReportWindowDays:    v.GetInt("report_window_days"),
		ReportStorageMode:   strings.ToLower(strings.TrimSpace(v.GetString("report_storage_mode"))),
		ReportLocalDir:      v.GetString("report_local_dir"),
		ReportBucket:        v.GetString("report_gcs_bucket_name"),
		StorageEmulatorHost: v.GetString("storage_emulator_host"),

		RedisAddr:            strings.TrimSpace(v.GetString("redis_addr")),
		ChatRateLimitPerMin:  v.GetInt("chat_rate_limit_per_minute"),
		MetricsEnabled:       v.GetBool("metrics_enabled"),
		MetricsAddr:          v.GetString("metrics_addr"),
		OtelEnabled:          v.GetBool("otel_enabled"),
		OtelEndpoint:         v.GetString("otel_exporter_otlp_endpoint"),
		OtelHeaders:          v.GetString("otel_exporter_otlp_headers"),
		OtelInsecure:         v.GetBool("otel_exporter_otlp_insecure"),
		OtelSampleRatio:      v.GetFloat64("otel_sample_ratio"),
		ServiceVersion:       v.GetString("service_version"),
		SeedQuestionsOnStart: v.GetBool("seed_questions_on_start"),
	}

	if cfg.JWTSecretKey == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = time.Hour
	}
	if cfg.ReportWindowDays <= 0 {
		cfg.ReportWindowDays = 30
	}
	if cfg.ChatRateLimitPerMin <= 0 {
		cfg.ChatRateLimitPerMin = 20
	}
	switch cfg.ReportStorageMode {
	case "":
		cfg.ReportStorageMode = ReportStorageLocal
	case ReportStorageLocal, ReportStorageGCS, ReportStorageGCSEmulator:
	default:
		return Config{}, fmt.Errorf("invalid REPORT_STORAGE_MODE=%q (allowed: %q, %q, %q)",
			cfg.ReportStorageMode, ReportStorageLocal, ReportStorageGCS, ReportStorageGCSEmulator)
	}
	return cfg, nil
}

// ValidateServe reports settings the API server needs that the maintenance
// commands do not.
func (c Config) ValidateServe() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return ErrMissingGeminiKey
	}
	return nil
}

// Address is the listen address for the API server.
func (c Config) Address() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
