package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points both config locations at empty temp directories.
func isolate(t *testing.T) (xdg, wd string) {
	t.Helper()
	xdg = t.TempDir()
	wd = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(wd)
	for _, key := range envKeys {
		name := "CHANFORUM_" + strings.ToUpper(key)
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
	return xdg, wd
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/chanforum/chanforum.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "chanforum.yml", filepath.Base(got))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Default()
	global.APIURL = "https://global.example"
	global.CacheBackend = CacheRedis
	require.NoError(t, WriteGlobal(global))

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("api_url: https://project.example\nrequest_timeout: 3s\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://project.example", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, CacheRedis, cfg.CacheBackend, "global values survive the merge")
	assert.True(t, Exists())
}

func TestLoad_EnvWins(t *testing.T) {
	isolate(t)
	require.NoError(t, WriteProject(&Config{APIURL: "https://file.example", CacheBackend: CacheNATS}))

	t.Setenv("CHANFORUM_API_URL", "https://env.example")
	t.Setenv("CHANFORUM_CACHE_BACKEND", CacheMemory)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.APIURL)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
}

func TestWriteGlobal_RoundTripsDuration(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.RequestTimeout = 1500 * time.Millisecond
	require.NoError(t, WriteGlobal(cfg))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "request_timeout: 1.5s")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.RequestTimeout, loaded.RequestTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"relative url", func(c *Config) { c.APIURL = "localhost:8080" }, true},
		{"unknown backend", func(c *Config) { c.CacheBackend = "memcached" }, true},
		{"redis without addr", func(c *Config) { c.CacheBackend = CacheRedis; c.RedisAddr = "" }, true},
		{"redis", func(c *Config) { c.CacheBackend = CacheRedis }, false},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
