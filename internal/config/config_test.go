package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultArenaConfig()
	var embedded ArenaConfig
	if err := yaml.Unmarshal(GetDefaultYAML("arena"), &embedded); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, embedded) {
		t.Errorf("embedded defaults differ from DefaultArenaConfig\n got %+v\nwant %+v", embedded, cfg)
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default yaml")
	}
}

func TestToParamsMatchesSimDefaults(t *testing.T) {
	got := DefaultArenaConfig().ToParams()
	want := sim.DefaultParams()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToParams() = %+v\nwant %+v", got, want)
	}
}

func TestToParamsConvertsMilliseconds(t *testing.T) {
	cfg := DefaultArenaConfig()
	cfg.Timing.TickRate = 30
	cfg.Timing.GraceMS = 1000
	cfg.Timing.FuseMS = 2000
	p := cfg.ToParams()
	if p.GraceTicks != 30 || p.FuseTicks != 60 {
		t.Errorf("grace %d fuse %d, want 30 and 60", p.GraceTicks, p.FuseTicks)
	}
	if p.PowerUps.InvincibleTicks != 150 {
		t.Errorf("invincible ticks = %d, want 150", p.PowerUps.InvincibleTicks)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ArenaConfig)
		want   string
	}{
		{"defaults", func(*ArenaConfig) {}, ""},
		{"zero cols", func(c *ArenaConfig) { c.Grid.Cols = 0 }, "grid.cols"},
		{"negative tile", func(c *ArenaConfig) { c.Grid.TileSize = -4 }, "grid.tile_size"},
		{"no rounds", func(c *ArenaConfig) { c.Match.MaxRounds = 0 }, "match.max_rounds"},
		{"bomb cap", func(c *ArenaConfig) { c.Player.MaxBombLimit = 0 }, "max_bomb_limit"},
		{"wander range", func(c *ArenaConfig) { c.Monsters.Wanderer.MaxSpeed = 0 }, "speed range"},
		{"error rate", func(c *ArenaConfig) { c.Monsters.Faulty.ErrorRate = 1.5 }, "error_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultArenaConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadArenaCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	content := "match:\n  max_rounds: 7\ntiming:\n  grace_ms: 1000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArena(path)
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if cfg.Match.MaxRounds != 7 || cfg.Timing.GraceMS != 1000 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Grid.Cols != 16 || cfg.Player.Life != 3 {
		t.Errorf("defaults lost for unset keys: %+v", cfg)
	}
}

func TestLoadArenaCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  cols: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage.yaml")
	if err := os.WriteFile(garbage, []byte("grid: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), invalid, garbage} {
		if _, err := LoadArena(path); err == nil {
			t.Errorf("LoadArena(%s) succeeded", filepath.Base(path))
		}
	}
}

func TestLoadArenaFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadArena("")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultArenaConfig()) {
		t.Errorf("LoadArena(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadArenaLocalDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "arena.yaml"), []byte("player:\n  life: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArena("")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if cfg.Player.Life != 5 {
		t.Errorf("life = %d, want 5 from ./configs", cfg.Player.Life)
	}
}
