package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EVENTS_CONFIG", "EVENTS_WEB_ADDR", "EVENTS_API_URL", "EVENTS_PAGE_TEMPLATE",
		"EVENTS_API_ADDR", "EVENTS_DB_DRIVER", "EVENTS_DB_DSN", "POSTGRES_DSN", "EVENTS_CORS_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
web:
  addr: ":9000"
api:
  db_driver: postgres
  db_dsn: "postgres://localhost/events"
  cors_origins: ["http://a", "http://b"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Web.Addr != ":9000" {
		t.Errorf("expected web addr from file, got %q", cfg.Web.Addr)
	}
	if cfg.Web.APIURL != DefaultAPIURL {
		t.Errorf("expected default api url, got %q", cfg.Web.APIURL)
	}
	if cfg.API.DBDriver != "postgres" || cfg.API.DBDSN != "postgres://localhost/events" {
		t.Errorf("unexpected db settings %+v", cfg.API)
	}
	if !reflect.DeepEqual(cfg.API.CORSOrigins, []string{"http://a", "http://b"}) {
		t.Errorf("unexpected origins %v", cfg.API.CORSOrigins)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
web:
  addr: ":9000"
  api_url: "http://file/events"
`)
	t.Setenv("EVENTS_CONFIG", path)
	t.Setenv("EVENTS_WEB_ADDR", ":7000")
	t.Setenv("EVENTS_CORS_ORIGINS", "http://x, ,http://y")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Web.Addr != ":7000" {
		t.Errorf("expected env addr, got %q", cfg.Web.Addr)
	}
	if cfg.Web.APIURL != "http://file/events" {
		t.Errorf("expected file api url, got %q", cfg.Web.APIURL)
	}
	if !reflect.DeepEqual(cfg.API.CORSOrigins, []string{"http://x", "http://y"}) {
		t.Errorf("unexpected origins %v", cfg.API.CORSOrigins)
	}
}

func TestLoad_PostgresDSNSelectsPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://db/events?sslmode=disable")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.DBDriver != "postgres" || cfg.API.DBDSN != "postgres://db/events?sslmode=disable" {
		t.Fatalf("unexpected db settings %+v", cfg.API)
	}

	t.Setenv("EVENTS_DB_DRIVER", "sqlite")
	t.Setenv("EVENTS_DB_DSN", "other.db")
	cfg, _ = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg.API.DBDriver != "sqlite" || cfg.API.DBDSN != "other.db" {
		t.Fatalf("explicit settings should win, got %+v", cfg.API)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "web: [unclosed")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
