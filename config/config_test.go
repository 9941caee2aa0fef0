package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.SampleRate != 44100 {
		t.Errorf("expected default sample rate 44100, got %d", cfg.SampleRate)
	}
	if cfg.Channels != 1 {
		t.Errorf("expected default mono capture, got %d channels", cfg.Channels)
	}
	if cfg.ChunkMillis != 250 {
		t.Errorf("expected default chunk interval 250ms, got %d", cfg.ChunkMillis)
	}
	if cfg.DBFile != filepath.Join(cfg.DataDir, "recbox.db") {
		t.Errorf("database file should live in the data dir, got %s", cfg.DBFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RECBOX_DATA_DIR", "/tmp/recbox-test")
	t.Setenv("RECBOX_SAMPLE_RATE", "16000")
	t.Setenv("RECBOX_CHANNELS", "2")
	t.Setenv("RECBOX_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.DataDir != "/tmp/recbox-test" {
		t.Errorf("expected data dir override, got %s", cfg.DataDir)
	}
	if cfg.DBFile != filepath.Join("/tmp/recbox-test", "recbox.db") {
		t.Errorf("database file should follow the data dir, got %s", cfg.DBFile)
	}
	if cfg.SampleRate != 16000 {
		t.Errorf("expected sample rate override, got %d", cfg.SampleRate)
	}
	if cfg.Channels != 2 {
		t.Errorf("expected channel override, got %d", cfg.Channels)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level override, got %s", cfg.LogLevel)
	}
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("RECBOX_SAMPLE_RATE", "fast")

	cfg := Load()
	if cfg.SampleRate != 44100 {
		t.Errorf("malformed int should fall back to default, got %d", cfg.SampleRate)
	}
}
