package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Session.TimeLimit != 120 {
		t.Errorf("time_limit = %v, want 120", cfg.Session.TimeLimit)
	}
	if cfg.Arena.StartRadius != 400 || cfg.Arena.MinRadius != 100 || cfg.Arena.ShrinkRate != 0.5 {
		t.Errorf("arena = %+v, want 400/100/0.5", cfg.Arena)
	}
	if cfg.Derived.ShrinkTime != 600 {
		t.Errorf("ShrinkTime = %v, want 600", cfg.Derived.ShrinkTime)
	}
	if cfg.Derived.HistoryNeeds != 500 {
		t.Errorf("HistoryNeeds = %v, want 500", cfg.Derived.HistoryNeeds)
	}
	if cfg.Boss.Rematch {
		t.Error("boss rematch should default to false")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("session:\n  time_limit: 30\nbots:\n  count: 2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Session.TimeLimit != 30 {
		t.Errorf("time_limit = %v, want 30", cfg.Session.TimeLimit)
	}
	if cfg.Bots.Count != 2 {
		t.Errorf("bots.count = %d, want 2", cfg.Bots.Count)
	}
	// Untouched keys keep their defaults
	if cfg.Session.MaxDT != 0.1 {
		t.Errorf("max_dt = %v, want 0.1", cfg.Session.MaxDT)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero time limit", func(c *Config) { c.Session.TimeLimit = 0 }},
		{"negative arena radius", func(c *Config) { c.Arena.StartRadius = -1 }},
		{"zero shrink rate", func(c *Config) { c.Arena.ShrinkRate = 0 }},
		{"floor above start", func(c *Config) { c.Arena.MinRadius = 500 }},
		{"zero player speed", func(c *Config) { c.Player.BaseSpeed = 0 }},
		{"zero bot speed", func(c *Config) { c.Bots.Speed = 0 }},
		{"negative boss speed", func(c *Config) { c.Boss.Speed = -4 }},
		{"zero magnet", func(c *Config) { c.Player.BaseMagnet = 0 }},
		{"zero combo step", func(c *Config) { c.Combo.StepCount = 0 }},
		{"history too short for segments", func(c *Config) { c.Creature.HistoryCap = 499 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MustDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}

	t.Run("stationary boss allowed", func(t *testing.T) {
		cfg := MustDefaults()
		cfg.Boss.Speed = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := MustDefaults()
	cfg.Bots.Count = 3
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Bots.Count != 3 {
		t.Errorf("bots.count = %d, want 3", loaded.Bots.Count)
	}
}
