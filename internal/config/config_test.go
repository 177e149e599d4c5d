package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Charts.Width != 600 || cfg.Charts.Height != 300 {
		t.Errorf("default canvas = %vx%v, want 600x300", cfg.Charts.Width, cfg.Charts.Height)
	}
	if cfg.Charts.Padding != 20 {
		t.Errorf("default padding = %v, want 20", cfg.Charts.Padding)
	}
	if !cfg.Datasets.Watch {
		t.Error("dataset watching should default on")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %s, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9191
charts:
  width: 800
  palette: ["#111111", "#222222"]
datasets:
  dir: /var/lib/lightcharts
dashboard:
  title: Territory Overview
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Charts.Width != 800 {
		t.Errorf("width = %v, want 800", cfg.Charts.Width)
	}
	if len(cfg.Charts.Palette) != 2 || cfg.Charts.Palette[0] != "#111111" {
		t.Errorf("palette not loaded: %v", cfg.Charts.Palette)
	}
	if cfg.Datasets.Dir != "/var/lib/lightcharts" {
		t.Errorf("datasets dir = %s", cfg.Datasets.Dir)
	}
	if cfg.Dashboard.Title != "Territory Overview" {
		t.Errorf("dashboard title = %s", cfg.Dashboard.Title)
	}
	// Unset keys keep their defaults.
	if cfg.Charts.Height != 300 {
		t.Errorf("height = %v, want default 300", cfg.Charts.Height)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LIGHTCHARTS_SERVER_PORT", "7070")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("env override ignored: port = %d, want 7070", cfg.Server.Port)
	}
}
