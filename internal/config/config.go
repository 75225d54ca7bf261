// Package config loads chanforum settings with Viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Cache backends accepted by the cache_backend key.
const (
	CacheNATS   = "nats"
	CacheRedis  = "redis"
	CacheMemory = "memory"
)

// Config holds all configuration values for chanforum.
type Config struct {
	APIURL         string        `mapstructure:"api_url" yaml:"api_url"`
	APIToken       string        `mapstructure:"api_token" yaml:"api_token,omitempty"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	CacheBackend   string        `mapstructure:"cache_backend" yaml:"cache_backend"`
	DataDir        string        `mapstructure:"data_dir" yaml:"data_dir"`
	RedisAddr      string        `mapstructure:"redis_addr" yaml:"redis_addr,omitempty"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		APIURL:         "http://localhost:8080",
		RequestTimeout: 10 * time.Second,
		CacheBackend:   CacheNATS,
		DataDir:        ".chanforum",
		RedisAddr:      "localhost:6379",
		LogLevel:       "info",
	}
}

var envKeys = []string{
	"api_url",
	"api_token",
	"request_timeout",
	"cache_backend",
	"data_dir",
	"redis_addr",
	"log_level",
	"log_file",
}

// Load loads configuration with precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("chanforum")

	def := Default()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("api_token", "")
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("cache_backend", def.CacheBackend)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("redis_addr", def.RedisAddr)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("CHANFORUM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key, "CHANFORUM_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if globalPath := GlobalPath(); fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	if projectPath := ProjectPath(); fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not an absolute URL", c.APIURL)
	}
	switch c.CacheBackend {
	case CacheNATS, CacheMemory:
	case CacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache_backend %q (want %s, %s or %s)", c.CacheBackend, CacheNATS, CacheRedis, CacheMemory)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns $XDG_CONFIG_HOME/chanforum/chanforum.yml,
// falling back to ~/.config/chanforum/chanforum.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chanforum", "chanforum.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chanforum", "chanforum.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "chanforum.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
