package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the project config looked up next to the story.
const FileName = "fater.yaml"

type Logging struct {
	Level  string `yaml:"level" env:"FATER_LOG_LEVEL"`
	Format string `yaml:"format" env:"FATER_LOG_FORMAT"`
	File   string `yaml:"file" env:"FATER_LOG_FILE"`
}

type Serve struct {
	Addr string `yaml:"addr" env:"FATER_SERVE_ADDR"`
	CORS bool   `yaml:"cors" env:"FATER_SERVE_CORS"`
}

type Config struct {
	Name         string  `yaml:"name"`
	Story        string  `yaml:"story" env:"FATER_STORY"`
	Start        string  `yaml:"start" env:"FATER_START"`
	RequireStart bool    `yaml:"require-start" env:"FATER_REQUIRE_START"`
	IFID         string  `yaml:"ifid"`
	Logging      Logging `yaml:"logging"`
	Serve        Serve   `yaml:"serve"`

	// Dir is the directory the config was loaded from; relative paths
	// resolve against it.
	Dir string `yaml:"-"`
}

// Defaults returns the configuration used when no fater.yaml exists.
func Defaults() Config {
	return Config{
		Story:        "story.fater",
		Start:        "START",
		RequireStart: true,
		Logging:      Logging{Level: "info", Format: "console"},
		Serve:        Serve{Addr: "127.0.0.1:8080"},
	}
}

// Load reads a YAML config file, applies environment overrides and returns a
// validated Config. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	cfg.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StoryPath returns the story file to use: arg when given, otherwise the
// configured story resolved against the config directory.
func (c *Config) StoryPath(arg string) string {
	if arg != "" {
		return arg
	}
	if filepath.IsAbs(c.Story) || c.Dir == "" {
		return c.Story
	}
	return filepath.Join(c.Dir, c.Story)
}
