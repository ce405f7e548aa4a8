package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Story != "story.fater" || cfg.Start != "START" || !cfg.RequireStart {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.Dir != dir {
		t.Fatalf("Dir = %q, want %q", cfg.Dir, dir)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	os.WriteFile(path, []byte(`name: cave
story: stories/cave.fater
start: ENTRANCE
require-start: false
logging:
  level: debug
  format: json
serve:
  addr: ":9000"
  cors: true
`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "cave" || cfg.Start != "ENTRANCE" || cfg.RequireStart {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}
	if cfg.Serve.Addr != ":9000" || !cfg.Serve.CORS {
		t.Fatalf("Serve = %+v", cfg.Serve)
	}
	if got, want := cfg.StoryPath(""), filepath.Join(dir, "stories", "cave.fater"); got != want {
		t.Fatalf("StoryPath = %q, want %q", got, want)
	}
	if got := cfg.StoryPath("other.fater"); got != "other.fater" {
		t.Fatalf("StoryPath(arg) = %q", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	os.WriteFile(path, []byte("start: ENTRANCE\nlogging:\n  level: info\n"), 0644)

	t.Setenv("FATER_START", "HALL")
	t.Setenv("FATER_LOG_LEVEL", "warn")
	t.Setenv("FATER_SERVE_CORS", "true")
	t.Setenv("FATER_REQUIRE_START", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Start != "HALL" {
		t.Fatalf("Start = %q, want HALL", cfg.Start)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("Level = %q, want warn", cfg.Logging.Level)
	}
	if !cfg.Serve.CORS || cfg.RequireStart {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	os.WriteFile(path, []byte("start: [unclosed\n"), 0644)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "config:") {
		t.Fatalf("got %v", err)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	os.WriteFile(path, []byte("start: lowercase\n"), 0644)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "not a valid section name") {
		t.Fatalf("got %v", err)
	}
}
