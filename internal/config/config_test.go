package config

import (
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/memory/apps/go-server/internal/board"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5175" {
		t.Fatalf("expected default port 5175, got %q", cfg.Port)
	}
	if cfg.Board.Rows != 4 || cfg.Board.Columns != 4 {
		t.Fatalf("expected 4x4 default board, got %dx%d", cfg.Board.Rows, cfg.Board.Columns)
	}
	if got, want := cfg.Board.Timing(), board.DefaultTiming(); got != want {
		t.Fatalf("expected default timings %+v, got %+v", want, got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("BOARD_ROWS", "3")
	t.Setenv("BOARD_FLIP_DURATION", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9001" || cfg.Board.Rows != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Board.Timing().FlipDuration != 250*time.Millisecond {
		t.Fatalf("expected 250ms flip, got %v", cfg.Board.FlipDuration)
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("BOARD_ROWS", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
