package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PGPOOL_PORT", "REDIS_PORT", "VM_CACHE_TTL", "RABBITMQ_HOST", "RABBITMQ_USER", "SERVICE_NAME", "DEPLOY_ENV", "HTTP_PORT", "GRAFANA_OTLP_ENDPOINT"} {
		t.Setenv(key, "")
	}

	cfg := LoadEnvConfig()

	assert.Equal(t, "5432", cfg.Postgres.Port)
	assert.Equal(t, "6379", cfg.Redis.RedisPort)
	assert.Equal(t, 60*time.Second, cfg.Redis.VMCacheTTL)
	assert.Equal(t, "localhost", cfg.RabbitMQ.Host)
	assert.Equal(t, "guest", cfg.RabbitMQ.Username)
	assert.Equal(t, "gau-vm-service", cfg.Grafana.ServiceName)
	assert.Equal(t, "development", cfg.Environment.Mode)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Empty(t, cfg.Grafana.OTLPEndpoint)
}

func TestLoadEnvConfig_Overrides(t *testing.T) {
	t.Setenv("VM_CACHE_TTL", "5")
	t.Setenv("GRAFANA_OTLP_ENDPOINT", "https://otel.example.com")
	t.Setenv("ALLOWED_DOMAINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("DEPLOY_ENV", "production")

	cfg := LoadEnvConfig()

	assert.Equal(t, 5*time.Second, cfg.Redis.VMCacheTTL)
	assert.Equal(t, "otel.example.com", cfg.Grafana.OTLPEndpoint)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins())
	assert.True(t, cfg.IsProduction())
}
