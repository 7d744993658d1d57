package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Web.Port != 8084 {
		t.Errorf("Port = %d, want 8084", cfg.Web.Port)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `backend:
  base_url: "https://fleet.internal:8443"
  timeout: 5s
web:
  port: 9090
messaging:
  audit_topic: "ops.audit"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "https://fleet.internal:8443" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Backend.Timeout)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Web.Port)
	}
	if cfg.Messaging.AuditTopic != "ops.audit" {
		t.Errorf("AuditTopic = %q", cfg.Messaging.AuditTopic)
	}
	// Untouched sections keep their defaults.
	if cfg.Database.SQLite.Path != "fleetconsole.db" {
		t.Errorf("SQLite path = %q", cfg.Database.SQLite.Path)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Defaults()
	cfg.Web.Port = 7070

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Web.Port != 7070 {
		t.Errorf("Port = %d, want 7070", loaded.Web.Port)
	}
}
