package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServer_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.MaxWorldExtent != 100000 {
		t.Errorf("MaxWorldExtent = %d; want 100000", cfg.MaxWorldExtent)
	}
	if cfg.Lobby != "skirmish:lobby" {
		t.Errorf("Lobby = %q; want skirmish:lobby", cfg.Lobby)
	}
	if len(cfg.Types) == 0 {
		t.Error("defaults should include at least one instance type")
	}
}

func TestLoadServer_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := `
log_level: debug
lobby: hub:main
max_world_extent: 50000
worlds:
  - key: hub:main
    extent: 256
  - key: hub:pit
    extent: 2048
    spawn_y: 80
types:
  - id: duel
    name: Duel
    countdown_seconds: 10
    round_seconds: 120
    max_players: 2
    spawns: 2
    spawn_radius: 50
    chests: 4
round_history: true
database:
  host: db.local
  port: 5433
  user: u
  password: p
  dbname: skirmish
  sslmode: require
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want debug", cfg.LogLevel)
	}
	if cfg.Lobby != "hub:main" {
		t.Errorf("Lobby = %q; want hub:main", cfg.Lobby)
	}
	if cfg.MaxWorldExtent != 50000 {
		t.Errorf("MaxWorldExtent = %d; want 50000", cfg.MaxWorldExtent)
	}
	if len(cfg.Worlds) != 2 || cfg.Worlds[1].SpawnY != 80 {
		t.Errorf("Worlds = %+v; want 2 entries with pit spawn_y 80", cfg.Worlds)
	}
	if len(cfg.Types) != 1 || cfg.Types[0].ID != "duel" || cfg.Types[0].MaxPlayers != 2 {
		t.Errorf("Types = %+v; want single duel type", cfg.Types)
	}
	if !cfg.RoundHistory {
		t.Error("RoundHistory should be enabled")
	}
	want := "postgres://u:p@db.local:5433/skirmish?sslmode=require"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN() = %q; want %q", got, want)
	}
}

func TestLoadServer_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("worlds: [notamap"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadServer(path); err == nil {
		t.Error("expected parse error")
	}
}
