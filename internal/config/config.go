package config

import (
	"strings"
	"time"

	"github.com/hutchinsdata/site/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Content modes recognised by the fetch gateway.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Webhook   WebhookConfig
	Site      SiteConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	MinIO     MinIOConfig
	NATS      NATSConfig
	RateLimit RateLimitConfig
	Preview   PreviewConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ContentConfig describes the headless content store and the caching policy
// applied to reads from it.
type ContentConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
	Mode       string
	Revalidate time.Duration
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

type WebhookConfig struct {
	Secret string
}

type SiteConfig struct {
	URL                string
	GoogleVerification string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string

	// ServeMedia points image URLs at the mirror bucket instead of the CDN.
	ServeMedia bool
}

type NATSConfig struct {
	URL     string
	Subject string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type PreviewConfig struct {
	Secret string
	TTL    time.Duration
}

// Development reports whether content reads bypass the cache and include drafts.
func (c ContentConfig) Development() bool {
	return c.Mode == ModeDevelopment
}

// Configured reports whether a content store project is set.
func (c ContentConfig) Configured() bool {
	return c.ProjectID != "" && c.Dataset != ""
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", ModeProduction)
	v.SetDefault("SANITY_PROJECT_ID", "wl8pm9jv")
	v.SetDefault("SANITY_DATASET", "production")
	v.SetDefault("SANITY_API_VERSION", "2024-01-01")
	v.SetDefault("SANITY_USE_CDN", true)
	v.SetDefault("SANITY_REVALIDATE_SECONDS", 60)
	v.SetDefault("SANITY_TIMEOUT_SECONDS", 10)
	v.SetDefault("SANITY_MAX_RETRIES", 0)
	v.SetDefault("SANITY_RETRY_DELAY_MS", 200)
	v.SetDefault("SITE_URL", "https://hutchinsdatastrategy.com")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("MONGODB_DATABASE", "hutchins_site")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MINIO_BUCKET", "site-media")
	v.SetDefault("NATS_SUBJECT", "site.revalidate")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 0.2)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("PREVIEW_TTL_MINUTES", 60)

	env := v.GetString("SERVER_ENVIRONMENT")
	mode := strings.ToLower(strings.TrimSpace(v.GetString("CONTENT_MODE")))
	if mode == "" {
		mode = strings.ToLower(env)
	}
	if mode != ModeDevelopment {
		mode = ModeProduction
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  env,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Content: ContentConfig{
			ProjectID:  v.GetString("SANITY_PROJECT_ID"),
			Dataset:    v.GetString("SANITY_DATASET"),
			APIVersion: v.GetString("SANITY_API_VERSION"),
			UseCDN:     v.GetBool("SANITY_USE_CDN"),
			Token:      v.GetString("SANITY_API_TOKEN"),
			Mode:       mode,
			Revalidate: time.Duration(v.GetInt("SANITY_REVALIDATE_SECONDS")) * time.Second,
			Timeout:    time.Duration(v.GetInt("SANITY_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries: v.GetInt("SANITY_MAX_RETRIES"),
			RetryDelay: time.Duration(v.GetInt("SANITY_RETRY_DELAY_MS")) * time.Millisecond,
		},
		Webhook: WebhookConfig{
			Secret: v.GetString("SANITY_WEBHOOK_SECRET"),
		},
		Site: SiteConfig{
			URL:                strings.TrimRight(v.GetString("SITE_URL"), "/"),
			GoogleVerification: v.GetString("GOOGLE_SITE_VERIFICATION"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:   v.GetString("MINIO_ENDPOINT"),
			AccessKey:  v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:  v.GetString("MINIO_SECRET_KEY"),
			UseSSL:     v.GetBool("MINIO_USE_SSL"),
			Bucket:     v.GetString("MINIO_BUCKET"),
			ServeMedia: v.GetBool("MINIO_SERVE_MEDIA"),
		},
		NATS: NATSConfig{
			URL:     v.GetString("NATS_URL"),
			Subject: v.GetString("NATS_SUBJECT"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Preview: PreviewConfig{
			Secret: v.GetString("PREVIEW_SECRET"),
			TTL:    time.Duration(v.GetInt("PREVIEW_TTL_MINUTES")) * time.Minute,
		},
	}

	// Basic validation
	if cfg.Webhook.Secret == "" {
		logger.Warn("SANITY_WEBHOOK_SECRET is not set; revalidation webhook will reject every call")
	}
	if cfg.Content.Development() && cfg.Content.Token == "" {
		logger.Warn("development mode without SANITY_API_TOKEN; draft documents will not be visible")
	}

	return cfg, nil
}
