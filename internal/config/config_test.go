package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Database.Path != "fleetassist.sqlite3" {
		t.Errorf("expected default database path, got %q", cfg.Database.Path)
	}
	if cfg.Storage.Backend != "mock" {
		t.Errorf("expected default storage backend mock, got %q", cfg.Storage.Backend)
	}
}
