// ABOUTME: Tests for configuration load/save, clamping and file watching
// ABOUTME: Validates TOML parsing and default config fallback behavior

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Speed != 1.0 {
		t.Errorf("Expected Speed 1.0, got %.2f", cfg.Speed)
	}

	if cfg.BaseDelayMS != 800 {
		t.Errorf("Expected BaseDelayMS 800, got %d", cfg.BaseDelayMS)
	}

	if cfg.BaseDelay() != 800*time.Millisecond {
		t.Errorf("Expected BaseDelay 800ms, got %v", cfg.BaseDelay())
	}

	if cfg != cfg.Clamp() {
		t.Errorf("Default config should already be within bounds: %+v", cfg.Clamp())
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "algoviz.toml")

	cfg := DefaultConfig()
	cfg.Speed = 1.23456
	cfg.SortAlgorithm = "heap"
	cfg.TreeType = "complete"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Speed != 1.23 {
		t.Errorf("Speed should be rounded to 2 decimals: got %v", loaded.Speed)
	}

	if loaded.SortAlgorithm != "heap" || loaded.TreeType != "complete" {
		t.Errorf("Names mismatch: got %q / %q", loaded.SortAlgorithm, loaded.TreeType)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.toml")
	if err := os.WriteFile(path, []byte("speed = 2.5\nsort_algorithm = \"quickSort\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Speed != 2.5 {
		t.Errorf("Expected Speed 2.5, got %v", cfg.Speed)
	}

	if cfg.SortAlgorithm != "quick" {
		t.Errorf("Expected normalized sort algorithm quick, got %q", cfg.SortAlgorithm)
	}

	if cfg.Servers != DefaultConfig().Servers {
		t.Errorf("Missing key should keep default servers, got %d", cfg.Servers)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.toml")
	if err := os.WriteFile(path, []byte("speed = \"fast\""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected parse error")
	}

	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults on parse error, got %+v", cfg)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		in    Config
		check func(Config) bool
	}{
		{"speed too high", Config{Speed: 50}, func(c Config) bool { return c.Speed == 8 }},
		{"speed too low", Config{Speed: 0.01}, func(c Config) bool { return c.Speed == 0.25 }},
		{"array too small", Config{ArraySize: 1}, func(c Config) bool { return c.ArraySize == 5 }},
		{"array too large", Config{ArraySize: 99}, func(c Config) bool { return c.ArraySize == 20 }},
		{"delay floor", Config{BaseDelayMS: 1}, func(c Config) bool { return c.BaseDelayMS == MinBaseDelayMS }},
		{"servers", Config{Servers: 40}, func(c Config) bool { return c.Servers == MaxServers }},
		{"unknown sort", Config{SortAlgorithm: "bogo"}, func(c Config) bool { return c.SortAlgorithm == "bubble" }},
		{"unknown tree", Config{TreeType: "avl"}, func(c Config) bool { return c.TreeType == "bst" }},
		{"policy alias", Config{DispatchPolicy: "lc"}, func(c Config) bool { return c.DispatchPolicy == "least-connections" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp()
			if !tt.check(got) {
				t.Errorf("Clamp(%+v) = %+v", tt.in, got)
			}
		})
	}
}

func TestSharedConfig(t *testing.T) {
	shared := NewSharedConfig(DefaultConfig())

	cfg := shared.Get()
	cfg.Speed = 4
	shared.Update(cfg)

	if shared.Get().Speed != 4 {
		t.Errorf("Expected updated speed 4, got %v", shared.Get().Speed)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.toml")
	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, t.Logf)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		cfg Config
		err error
	}

	done := make(chan result, 1)

	go func() {
		cfg, err := w.Next(ctx)
		done <- result{cfg, err}
	}()

	cfg := DefaultConfig()
	cfg.Speed = 3
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}

	got := <-done
	if got.err != nil {
		t.Fatalf("Next failed: %v", got.err)
	}

	if got.cfg.Speed != 3 {
		t.Errorf("Expected reloaded speed 3, got %v", got.cfg.Speed)
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "algoviz.toml"), nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.Next(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
