// Package config loads settings for the events page server and the events
// API. Values come from a YAML file with defaults, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds both servers' settings.
type Config struct {
	Web WebConfig `yaml:"web"`
	API APIConfig `yaml:"api"`
}

// WebConfig configures the page server.
type WebConfig struct {
	Addr         string `yaml:"addr"`
	APIURL       string `yaml:"api_url"`
	PageTemplate string `yaml:"page_template"`
}

// APIConfig configures the events API and its storage.
type APIConfig struct {
	Addr        string   `yaml:"addr"`
	DBDriver    string   `yaml:"db_driver"`
	DBDSN       string   `yaml:"db_dsn"`
	CORSOrigins []string `yaml:"cors_origins"`
}

const (
	// DefaultConfigPath is read when EVENTS_CONFIG is not set. A missing file
	// means defaults.
	DefaultConfigPath = "events.yaml"

	DefaultWebAddr  = ":8081"
	DefaultAPIURL   = "http://localhost:3000/events"
	DefaultAPIAddr  = ":3000"
	DefaultDBDriver = "sqlite"
	DefaultDBDSN    = "events.db"
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Web: WebConfig{
			Addr:   DefaultWebAddr,
			APIURL: DefaultAPIURL,
		},
		API: APIConfig{
			Addr:        DefaultAPIAddr,
			DBDriver:    DefaultDBDriver,
			DBDSN:       DefaultDBDSN,
			CORSOrigins: []string{"http://localhost:8081"},
		},
	}
}

// Load reads the file at path (EVENTS_CONFIG or DefaultConfigPath when
// empty) over the defaults and applies environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("EVENTS_CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(os.Getenv)
	cfg.fillDefaults()
	return cfg, nil
}

func loadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&c.Web.Addr, "EVENTS_WEB_ADDR")
	set(&c.Web.APIURL, "EVENTS_API_URL")
	set(&c.Web.PageTemplate, "EVENTS_PAGE_TEMPLATE")
	set(&c.API.Addr, "EVENTS_API_ADDR")

	// POSTGRES_DSN is the older way to point at postgres
	if dsn := strings.TrimSpace(getenv("POSTGRES_DSN")); dsn != "" {
		c.API.DBDriver = "postgres"
		c.API.DBDSN = dsn
	}
	set(&c.API.DBDriver, "EVENTS_DB_DRIVER")
	set(&c.API.DBDSN, "EVENTS_DB_DSN")

	if v := getenv("EVENTS_CORS_ORIGINS"); strings.TrimSpace(v) != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.API.CORSOrigins = origins
	}
}

// fillDefaults restores defaults a file may have blanked.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Web.Addr == "" {
		c.Web.Addr = d.Web.Addr
	}
	if c.Web.APIURL == "" {
		c.Web.APIURL = d.Web.APIURL
	}
	if c.API.Addr == "" {
		c.API.Addr = d.API.Addr
	}
	if c.API.DBDriver == "" {
		c.API.DBDriver = d.API.DBDriver
	}
	if c.API.DBDSN == "" {
		c.API.DBDSN = d.API.DBDSN
	}
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
