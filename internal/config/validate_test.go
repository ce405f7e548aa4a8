package config

import (
	"strings"
	"testing"
)

func minimalConfig() *Config {
	cfg := Defaults()
	return &cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := minimalConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Start != "START" {
		t.Fatalf("Start = %q, want START", cfg.Start)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}
}

func TestValidate_StoryRequired(t *testing.T) {
	cfg := minimalConfig()
	cfg.Story = "  "
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "'story' must not be empty") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_EmptyStartDefaults(t *testing.T) {
	cfg := minimalConfig()
	cfg.Start = ""
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Start != "START" {
		t.Fatalf("Start = %q, want START", cfg.Start)
	}
}

func TestValidate_StartTrimmed(t *testing.T) {
	cfg := minimalConfig()
	cfg.Start = " INTRO "
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Start != "INTRO" {
		t.Fatalf("Start = %q, want INTRO", cfg.Start)
	}
}

func TestValidate_InvalidStart(t *testing.T) {
	for _, start := range []string{"intro", "START:", "123"} {
		cfg := minimalConfig()
		cfg.Start = start
		if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "not a valid section name") {
			t.Fatalf("start %q: got %v", start, err)
		}
	}
}

func TestValidate_ReservedStart(t *testing.T) {
	for _, start := range []string{"END", "__RESTART", "__MENU"} {
		cfg := minimalConfig()
		cfg.Start = start
		if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "reserved") {
			t.Fatalf("start %q: got %v", start, err)
		}
	}
}

func TestValidate_IFID(t *testing.T) {
	cfg := minimalConfig()
	cfg.IFID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.IFID != "3F2504E0-4F89-11D3-9A0C-0305E82C3301" {
		t.Fatalf("IFID = %q", cfg.IFID)
	}
}

func TestValidate_InvalidIFID(t *testing.T) {
	cfg := minimalConfig()
	cfg.IFID = "not-a-uuid"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "not a UUID") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := minimalConfig()
	cfg.Logging.Level = "DEBUG"
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Level = %q, want debug", cfg.Logging.Level)
	}

	cfg.Logging.Level = "verbose"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := minimalConfig()
	cfg.Logging.Format = "xml"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ServeAddrDefault(t *testing.T) {
	cfg := minimalConfig()
	cfg.Serve.Addr = ""
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Serve.Addr != "127.0.0.1:8080" {
		t.Fatalf("Addr = %q", cfg.Serve.Addr)
	}
}

func TestStoryOptions(t *testing.T) {
	cfg := minimalConfig()
	cfg.Start = "INTRO"
	cfg.RequireStart = false
	opts := cfg.StoryOptions()
	if opts.Start != "INTRO" || opts.RequireStart {
		t.Fatalf("got %+v", opts)
	}
}
