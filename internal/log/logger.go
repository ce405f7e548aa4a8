// Package log configures the process-wide slog logger.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization. Format is "console" or "json".
// When File is set, records are also written as JSON to a rotated file.
type Options struct {
	Level     string
	Format    string
	AddSource bool
	File      string
}

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	fileSink      io.Closer
)

// L returns the application logger. Before Init is called it returns a
// console logger at warn level so library code stays quiet.
func L() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(Options{Level: "warn"})
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Init replaces the application logger and slog's default.
func Init(opts Options) {
	initTo(os.Stderr, opts)
}

func initTo(w io.Writer, opts Options) {
	lvl := ParseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(w, hopts)
	} else {
		console = slog.NewTextHandler(w, hopts)
	}

	h := console
	var sink io.Closer
	if strings.TrimSpace(opts.File) != "" {
		rot := &lj.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		h = fanout(console, slog.NewJSONHandler(rot, hopts))
		sink = rot
	}

	logger := slog.New(h).With(slog.String("app", "fater"))

	mu.Lock()
	if fileSink != nil {
		fileSink.Close()
	}
	fileSink = sink
	defaultLogger = logger
	mu.Unlock()
	slog.SetDefault(logger)
}

// Close flushes and closes the rotating file sink, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileSink == nil {
		return nil
	}
	err := fileSink.Close()
	fileSink = nil
	return err
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
