package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jorge-barreto/fater/internal/story"
)

var validLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validFormats = map[string]bool{
	"":        true,
	"console": true,
	"json":    true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Story) == "" {
		return fmt.Errorf("config: 'story' must not be empty")
	}

	if cfg.Start == "" {
		cfg.Start = string(story.DefaultStart)
	}
	id, err := story.ParseIdentifier(0, cfg.Start, false)
	if err != nil {
		return fmt.Errorf("config: start %q is not a valid section name: %w", cfg.Start, err)
	}
	if id.Reserved() != story.NotReserved {
		return fmt.Errorf("config: start %q is a reserved name", cfg.Start)
	}
	cfg.Start = string(id)

	if cfg.IFID != "" {
		u, err := uuid.Parse(cfg.IFID)
		if err != nil {
			return fmt.Errorf("config: ifid %q is not a UUID: %w", cfg.IFID, err)
		}
		// Twine convention: IFIDs are upper case
		cfg.IFID = strings.ToUpper(u.String())
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("config: logging: unknown level %q (must be debug, info, warn, or error)", cfg.Logging.Level)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("config: logging: unknown format %q (must be console or json)", cfg.Logging.Format)
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if strings.TrimSpace(cfg.Serve.Addr) == "" {
		cfg.Serve.Addr = Defaults().Serve.Addr
	}
	return nil
}

// StoryOptions returns the parser options the config asks for.
func (c *Config) StoryOptions() story.Options {
	return story.Options{
		RequireStart: c.RequireStart,
		Start:        story.Identifier(c.Start),
	}
}
