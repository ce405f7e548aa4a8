package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jorge-barreto/fater/internal/config"
	"github.com/jorge-barreto/fater/internal/docs"
	"github.com/jorge-barreto/fater/internal/export"
	"github.com/jorge-barreto/fater/internal/log"
	"github.com/jorge-barreto/fater/internal/play"
	"github.com/jorge-barreto/fater/internal/scaffold"
	"github.com/jorge-barreto/fater/internal/server"
	"github.com/jorge-barreto/fater/internal/story"
	"github.com/jorge-barreto/fater/internal/ux"
	"github.com/jorge-barreto/fater/internal/watch"
	cli "github.com/urfave/cli/v3"
)

// errReported marks a failure that has already been printed.
var errReported = errors.New("reported")

func main() {
	app := &cli.Command{
		Name:        "fater",
		Usage:       "Parse, check, and play branching stories",
		Description: "Run 'fater docs' for documentation on story syntax, errors, and config.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to fater.yaml (default: search upward from cwd)"},
		},
		Commands: []*cli.Command{
			initCmd(),
			checkCmd(),
			showCmd(),
			playCmd(),
			exportCmd(),
			serveCmd(),
			docsCmd(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	log.Close()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		}
		os.Exit(1)
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create fater.yaml and an example story",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}
			return scaffold.Init(dir, os.Stdout)
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse and validate a story",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Re-check on every save"},
			&cli.BoolFlag{Name: "outline", Usage: "Print the section graph"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			path := cfg.StoryPath(cmd.Args().First())

			check := func(reload bool) error {
				source, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading story: %w", err)
				}
				st, err := story.ParseWithOptions(string(source), cfg.StoryOptions())
				if err != nil {
					if reload {
						ux.ReloadFailed(os.Stderr, path, err, string(source))
					} else {
						ux.ParseFailure(os.Stderr, path, err, string(source))
					}
					return errReported
				}
				if reload {
					ux.Reloaded(os.Stdout, path, st)
				} else {
					ux.CheckOK(os.Stdout, path, st)
				}
				for _, s := range st.Unreachable() {
					fmt.Fprintf(os.Stdout, "  %swarning:%s %s (line %d) is unreachable\n", ux.Yellow, ux.Reset, s.ID(), s.Line()+1)
				}
				if cmd.Bool("outline") {
					ux.RenderOutline(os.Stdout, st)
				}
				return nil
			}

			if !cmd.Bool("watch") {
				return check(false)
			}

			if err := check(false); err != nil && !errors.Is(err, errReported) {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			w := &watch.File{Path: path, OnChange: func() {
				if err := check(true); err != nil && !errors.Is(err, errReported) {
					fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
				}
			}}
			return w.Run(ctx)
		},
	}
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one section",
		ArgsUsage: "<section> [file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "html", Usage: "Print the HTML fragment instead"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().Get(0)
			if name == "" {
				return fmt.Errorf("section argument is required")
			}
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			st, err := loadStory(cfg, cmd.Args().Get(1))
			if err != nil {
				return err
			}

			id, err := story.ParseIdentifier(0, strings.ToUpper(name), false)
			if err != nil {
				return fmt.Errorf("invalid section name %q", name)
			}
			sec, ok := st.Resolve(id)
			if !ok {
				return fmt.Errorf("no section %s", id)
			}
			if cmd.Bool("html") {
				fmt.Println(sec.Render())
				return nil
			}
			ux.RenderSection(os.Stdout, sec)
			return nil
		},
	}
}

func playCmd() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Walk the story in the terminal",
		ArgsUsage: "[file]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			st, err := loadStory(cfg, cmd.Args().First())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			p := &play.Player{Story: st, Title: cfg.Name, In: os.Stdin, Out: os.Stdout}
			return p.Run(ctx)
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the parsed story as YAML, JSON, or a standalone HTML page",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "yaml, json, or html"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path (default: stdout)"},
			&cli.BoolFlag{Name: "schema", Usage: "Print the JSON Schema of the json format and exit"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("schema") {
				_, err := os.Stdout.Write(export.Schema())
				return err
			}
			format, err := export.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			st, err := loadStory(cfg, cmd.Args().First())
			if err != nil {
				return err
			}

			meta := export.Meta{Name: cfg.Name, IFID: cfg.IFID}
			out := cmd.String("out")
			if out == "" || out == "-" {
				data, err := export.Encode(st, meta, format)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := export.Write(out, st, meta, format); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s✓%s wrote %s\n", ux.Green, ux.Reset, out)
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Play-test the story in a browser",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (default from config)"},
			&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Reload pages when the story changes"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			path := cfg.StoryPath(cmd.Args().First())
			st, err := loadStory(cfg, path)
			if err != nil {
				return err
			}

			addr := cfg.Serve.Addr
			if a := cmd.String("addr"); a != "" {
				addr = a
			}
			srv := server.New(server.Config{
				Addr:  addr,
				CORS:  cfg.Serve.CORS,
				Debug: strings.EqualFold(cfg.Logging.Level, "debug"),
				Meta:  export.Meta{Name: cfg.Name, IFID: cfg.IFID},
			}, st)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cmd.Bool("watch") {
				w := &watch.File{Path: path, OnChange: func() {
					source, err := os.ReadFile(path)
					if err != nil {
						log.WithComponent("serve").Warn("reload failed", "error", err)
						return
					}
					next, err := story.ParseWithOptions(string(source), cfg.StoryOptions())
					if err != nil {
						ux.ReloadFailed(os.Stderr, path, err, string(source))
						return
					}
					srv.SetStory(next)
					ux.Reloaded(os.Stdout, path, next)
				}}
				go func() {
					if err := w.Run(ctx); err != nil {
						log.WithComponent("serve").Error("watcher stopped", "error", err)
					}
				}()
			}

			fmt.Fprintf(os.Stdout, "%s▸ serving %s on http://%s%s\n", ux.Cyan, filepath.Base(path), addr, ux.Reset)
			return srv.Run(ctx)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'fater docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// setup loads the config and initializes logging.
func setup(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log.Init(log.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	log.L().Debug("config loaded", "path", path, "story", cfg.Story)
	return cfg, nil
}

// loadStory parses the story named by arg, or the configured one. Parse
// failures are printed with their source line.
func loadStory(cfg *config.Config, arg string) (*story.Story, error) {
	path := cfg.StoryPath(arg)
	st, err := story.Load(path, cfg.StoryOptions())
	if err == nil {
		return st, nil
	}
	var pe *story.ParseError
	if !errors.As(err, &pe) {
		return nil, err
	}
	source, _ := os.ReadFile(path)
	ux.ParseFailure(os.Stderr, path, err, string(source))
	return nil, errReported
}

// findConfig walks up from cwd looking for fater.yaml. When none exists the
// cwd path is returned and the defaults apply.
func findConfig() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; {
		p := filepath.Join(dir, config.FileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join(wd, config.FileName), nil
		}
		dir = parent
	}
}
