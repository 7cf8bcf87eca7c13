package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "Savorly Engine", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Recommendation.PageSize)
	assert.Equal(t, 5, cfg.Recommendation.NextBatchSize)
	assert.Equal(t, 1, cfg.Recommendation.TieBand)
	assert.Equal(t, 24*time.Hour, cfg.Recommendation.ProfileCacheTTL)
	assert.Equal(t, "gpt-4", cfg.AI.Model)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "/metrics", cfg.Monitoring.MetricsPath)
	assert.True(t, cfg.Monitoring.EnableMetrics)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("SAVORLY_SERVER_PORT", "9090")
	t.Setenv("SAVORLY_RECOMMENDATION_PAGE_SIZE", "20")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Recommendation.PageSize)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.App.Name = "Savorly Engine"
		cfg.App.Environment = "development"
		cfg.Database.Database = "savorly"
		cfg.Server.Port = 8080
		cfg.Recommendation.PageSize = 10
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name"},
		{"missing database", func(c *Config) { c.Database.Database = "" }, "database.database"},
		{"production without jwt secret", func(c *Config) { c.App.Environment = "production" }, "jwt_secret"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero page size", func(c *Config) { c.Recommendation.PageSize = 0 }, "page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.App.Environment = "production"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 5432
	cfg.Database.Username = "savorly"
	cfg.Database.Password = "secret"
	cfg.Database.Database = "savorly"
	cfg.Database.SSLMode = "require"
	cfg.Redis.Host = "cache.internal"
	cfg.Redis.Port = 6379

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t,
		"host=db.internal port=5432 user=savorly password=secret dbname=savorly sslmode=require",
		cfg.GetDSN())
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
}
