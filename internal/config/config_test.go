package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Fatalf("expected sqlite default backend, got %q", cfg.Backend)
	}
	if cfg.SQLiteDBPath == "" || cfg.StateFilePath == "" {
		t.Fatalf("expected default paths, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OUTLAY_BACKEND", "file")
	t.Setenv("STATE_FILE_PATH", "/tmp/state.json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "file" || cfg.StateFilePath != "/tmp/state.json" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{Backend: "cloud", LogLevel: "loud"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid backend 'cloud'") || !strings.Contains(msg, "invalid log level 'loud'") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}

func TestValidateBackendPaths(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"sqlite no path", Config{Backend: "sqlite", LogLevel: "info"}, false},
		{"file no path", Config{Backend: "file", LogLevel: "info"}, false},
		{"memory", Config{Backend: "memory", LogLevel: "info"}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
