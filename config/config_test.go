package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: 9090
database:
  host: db.internal
  port: 5433
  user: pawcare
  password: secret
  name: pawcare
outbox:
  batch_size: 50
  poll_interval: 2s
fee_catalog:
  cache_ttl: 30s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfigFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 50, cfg.Outbox.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.FeeCatalog.CacheTTL)

	// defaults fill the rest
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 3, cfg.Outbox.RetryAttempts)
	assert.Equal(t, 5, cfg.Outbox.MaxDeliveries)
	assert.Equal(t, 5*time.Minute, cfg.Outbox.ClaimLease)
	assert.Equal(t, 256, cfg.Activity.QueueSize)
	assert.Equal(t, "activity", cfg.Redis.Channel)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PAWCARE_DB_HOST", "override-host")
	t.Setenv("PAWCARE_DB_PORT", "6543")
	t.Setenv("PAWCARE_JWT_SECRET", "s3cr3t")
	t.Setenv("PAWCARE_REDIS_URL", "redis://cache:6379/1")

	cfg, err := LoadConfigFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "override-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
}

func TestValidateRejectsZeroBatch(t *testing.T) {
	_, err := LoadConfigFile(writeConfig(t, "outbox:\n  batch_size: 0\n"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", c.DSN())
}
