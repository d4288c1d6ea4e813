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

	assert.Equal(t, "ledgerbook", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("LEDGER_APP_PORT", "9090")
	t.Setenv("LEDGER_DATABASE_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "ledger",
		Password: "p@ss:word/1",
		DBName:   "ledgerbook",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss:word/1", "raw password must be escaped")
}

func TestValidateRejectsBadPoolSettings(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MinConns = 50

	require.Error(t, cfg.validate())
}
