package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PREPPAL_STORAGE_PATH", "PREPPAL_NATS_PORT", "PREPPAL_HTTP_PORT",
		"PREPPAL_HOST_BRIDGE", "PREPPAL_LOCALE", "PREPPAL_REQUEST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := loadConfig()
	assert.Equal(t, "/tmp/preppal", cfg.StoragePath)
	assert.Equal(t, 4222, cfg.NATSPort)
	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.False(t, cfg.Privileged)
	assert.Equal(t, "en_US", cfg.Locale)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PREPPAL_STORAGE_PATH", "/var/lib/preppal")
	t.Setenv("PREPPAL_NATS_PORT", "14222")
	t.Setenv("PREPPAL_HTTP_PORT", "not-a-port")
	t.Setenv("PREPPAL_HOST_BRIDGE", "true")
	t.Setenv("PREPPAL_LOCALE", "de_CH")
	t.Setenv("PREPPAL_REQUEST_TIMEOUT", "250ms")

	cfg := loadConfig()
	assert.Equal(t, "/var/lib/preppal", cfg.StoragePath)
	assert.Equal(t, 14222, cfg.NATSPort)
	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.True(t, cfg.Privileged)
	assert.Equal(t, "de_CH", cfg.Locale)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
}
