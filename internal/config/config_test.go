package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SANITY_PROJECT_ID", "proj123")
	t.Setenv("SANITY_DATASET", "staging")
	t.Setenv("SANITY_WEBHOOK_SECRET", "correct-secret")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("SITE_URL", "https://example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "proj123", cfg.Content.ProjectID)
	require.Equal(t, "staging", cfg.Content.Dataset)
	require.Equal(t, "correct-secret", cfg.Webhook.Secret)
	require.Equal(t, "localhost", cfg.Redis.Host)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.Equal(t, "https://example.com", cfg.Site.URL)
	require.Equal(t, 60*time.Second, cfg.Content.Revalidate)
	require.True(t, cfg.Content.Configured())
}

func TestLoadConfig_ModeFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ENVIRONMENT", "development")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ModeDevelopment, cfg.Content.Mode)
	require.True(t, cfg.Content.Development())
}

func TestLoadConfig_ContentModeOverride(t *testing.T) {
	t.Setenv("SERVER_ENVIRONMENT", "development")
	t.Setenv("CONTENT_MODE", "staging-ish")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	// unknown modes fall back to production caching
	require.Equal(t, ModeProduction, cfg.Content.Mode)
}
