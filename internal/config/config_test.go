package config

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func TestEmptyEnvOverridesDefault(t *testing.T) {
	t.Setenv("CHESS_ORIGINS", "")
	t.Setenv("CHESS_LOG_LEVEL", "info")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AllowOrigins != "" {
		t.Errorf("expected the empty CHESS_ORIGINS to win, got %q", cfg.AllowOrigins)
	}
	if cfg.MatchInterval != time.Second {
		t.Errorf("unexpected match interval %v", cfg.MatchInterval)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":4000")
	t.Setenv("CHESS_LOG_LEVEL", "debug")

	cfg, err := Load([]string{"-addr", ":5000", "-data", "/tmp/chess"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Errorf("Addr = %q, want :5000", cfg.Addr)
	}
	if cfg.DataDir != "/tmp/chess" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if lvl, _ := cfg.Level(); lvl != log.LevelDebug {
		t.Errorf("Level = %v, want debug", lvl)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"-log-level", "loud"}},
		{"interval", []string{"-match-interval", "0s"}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
