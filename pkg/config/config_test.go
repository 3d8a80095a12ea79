package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "school_management", cfg.Database.Name)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 5, cfg.Dashboard.RecentLimit)
	assert.Equal(t, 7*24*time.Hour, cfg.Dashboard.UpcomingWindow)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("DASHBOARD_UPCOMING_WINDOW", "72h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 72*time.Hour, cfg.Dashboard.UpcomingWindow)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("bogus", time.Hour))
	assert.Equal(t, 2*time.Hour, parseDuration("2h", time.Hour))
}
