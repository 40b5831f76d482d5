package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("REPORTCHAT_BASE_URL", "http://localhost:7777")
	t.Setenv("REPORTCHAT_TOKEN", "secret")
	t.Setenv("REPORTCHAT_ACCENT", "#89b4fa")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Agent.URL != "http://localhost:7777" || cfg.Agent.Token != "secret" {
		t.Fatalf("env overrides not applied: %#v", cfg.Agent)
	}
	if cfg.UI.Accent != "#89b4fa" {
		t.Fatalf("accent override not applied: %#v", cfg.UI)
	}
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := []byte("[agent]\nurl = \"http://file:1\"\nmodel = \"report-agent\"\n\n[ui]\naccent = \"#CC0000\"\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("REPORTCHAT_BASE_URL", "http://env:2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Agent.URL != "http://env:2" {
		t.Fatalf("env should beat file: %q", cfg.Agent.URL)
	}
	if cfg.Agent.Model != "report-agent" || cfg.UI.Accent != "#CC0000" {
		t.Fatalf("file values lost: %#v", cfg)
	}
	if cfg.Source != path {
		t.Fatalf("source not recorded: %q", cfg.Source)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := Default()
	in.Agent.URL = "http://localhost:7777"
	in.UI.Accent = "#a6e3a1"

	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Agent.URL != in.Agent.URL || out.UI.Accent != in.UI.Accent {
		t.Fatalf("round trip mismatch: %#v", out)
	}
}
