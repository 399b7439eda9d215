package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"crm-service/internal/pkg/jwt"
)

// AnyOrigin in CORS_ALLOWED_ORIGINS accepts every origin.
const AnyOrigin = "*"

type AppConfig struct {
	// Server
	Env      string
	HTTPAddr string
	LogLevel string

	// Database
	DatabaseURL string
	DBMaxConns  int32
	AutoMigrate bool

	// Redis
	RedisAddr     string
	RedisPass     string
	RedisDB       int
	RedisPoolSize int

	// Session
	Session         jwt.Config
	SessionCookie   string
	SessionTTL      time.Duration
	AuthRateLimit   int64
	AuthRateWindow  time.Duration
	CORSAllowOrigin []string

	// TrustedProxies lists proxy CIDRs/IPs whose X-Forwarded-For is honoured.
	// Empty means the peer address is the client address.
	TrustedProxies []string

	// Outbound messaging
	AMQPURL             string
	DispatchRate        float64
	DispatchMetricsAddr string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	SMTPFromName string
}

// IsProduction reports whether the service runs with production settings.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load loads environment variables into AppConfig.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":5000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  int32(getEnvInt("DB_MAX_CONNS", 10)),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", false),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:     getEnv("REDIS_PASS", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPoolSize: getEnvInt("REDIS_POOL_SIZE", 10),

		SessionCookie:   getEnv("SESSION_COOKIE_NAME", "connect.sid"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		AuthRateLimit:   int64(getEnvInt("AUTH_RATE_LIMIT", 5)),
		AuthRateWindow:  getEnvDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		CORSAllowOrigin: getEnvSlice("CORS_ALLOWED_ORIGINS", nil),
		TrustedProxies:  getEnvSlice("TRUSTED_PROXIES", nil),

		AMQPURL:             getEnv("AMQP_URL", ""),
		DispatchRate:        getEnvFloat("DISPATCH_RATE", 5),
		DispatchMetricsAddr: getEnv("DISPATCH_METRICS_ADDR", ":9102"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "CRM"),
	}

	cfg.Session = jwt.Config{
		Secret: getEnv("SESSION_SECRET", ""),
		Issuer: "crm-service",
		TTL:    cfg.SessionTTL,
	}

	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL must be set")
	}
	// Outside production an unset origin list opens CORS to any origin.
	if len(cfg.CORSAllowOrigin) == 0 && !cfg.IsProduction() {
		cfg.CORSAllowOrigin = []string{AnyOrigin}
	}
	if cfg.Session.Secret == "" {
		if cfg.IsProduction() {
			return cfg, errors.New("SESSION_SECRET must be set in production")
		}
		cfg.Session.Secret = "crm-development-session-secret"
	}

	return cfg, nil
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
