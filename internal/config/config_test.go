package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 1.00, cfg.Fines.DailyRate)
	assert.False(t, cfg.Fines.WaiverSettles)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("LEND_HTTP_PORT", "9090")
	t.Setenv("LEND_FINES_DAILY_RATE", "0.50")
	t.Setenv("LEND_FINES_WAIVER_SETTLES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPServer.Port)
	assert.Equal(t, 0.50, cfg.Fines.DailyRate)
	assert.True(t, cfg.Fines.WaiverSettles)
}
