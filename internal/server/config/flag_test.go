package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"server",
		"-a", ":9090",
		"-d", "postgres://u:p@db:5432/auth",
		"-k", "/etc/auth/private.pem",
		"-p", "/etc/auth/public.pem",
		"-t", "30",
		"-r", "48",
		"-o", "papper.tech",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "postgres://u:p@db:5432/auth", c.DatabaseDSN)
	assert.Equal(t, "/etc/auth/private.pem", c.PrivateKeyPath)
	assert.Equal(t, "/etc/auth/public.pem", c.PublicKeyPath)
	assert.Equal(t, 30*time.Minute, c.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, c.RefreshTokenTTL)
	assert.Equal(t, "papper.tech", c.CookieDomain)
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"server", "-a", ":9191"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":9191", c.EndpointAddr)
	assert.Equal(t, 15*time.Minute, c.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, c.RefreshTokenTTL)
}
