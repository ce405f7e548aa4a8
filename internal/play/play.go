// Package play walks a story in the terminal.
package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jorge-barreto/fater/internal/log"
	"github.com/jorge-barreto/fater/internal/story"
	"github.com/jorge-barreto/fater/internal/ux"
)

// Player reads choices from In and writes sections to Out.
type Player struct {
	Story *story.Story
	Title string
	In    io.Reader
	Out   io.Writer

	reader *bufio.Reader
}

// errQuit ends a session at the reader's request.
var errQuit = errors.New("quit")

// Run shows the menu and walks the story until the reader quits, input ends,
// or ctx is cancelled.
func (p *Player) Run(ctx context.Context) error {
	if _, ok := p.Story.Section(p.Story.Start()); !ok {
		return fmt.Errorf("story has no %s section", p.Story.Start())
	}
	p.reader = bufio.NewReader(p.In)
	logger := log.WithComponent("play")

	for {
		err := p.menu(ctx)
		if err == nil {
			err = p.walk(ctx, logger)
		}
		switch {
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			fmt.Fprintln(p.Out)
			return nil
		case err != nil:
			return err
		}
	}
}

// menu blocks until the reader asks to start.
func (p *Player) menu(ctx context.Context) error {
	title := p.Title
	if title == "" {
		title = "fater"
	}
	for {
		fmt.Fprintf(p.Out, "\n%s%s%s\n\n  %s1)%s Start\n  %sq)%s Quit\n",
			ux.Bold, title, ux.Reset, ux.Bold, ux.Reset, ux.Bold, ux.Reset)
		input, err := p.prompt(ctx)
		if err != nil {
			return err
		}
		switch input {
		case "1", "s", "start":
			return nil
		case "q", "quit":
			return errQuit
		}
	}
}

// walk plays from the start section. It returns nil when a choice leads back
// to the menu.
func (p *Player) walk(ctx context.Context, logger *slog.Logger) error {
	current, _ := p.Story.Section(p.Story.Start())
	for {
		ux.RenderSection(p.Out, current)
		choices := current.Choices()

		choice, err := p.choose(ctx, len(choices))
		if err != nil {
			return err
		}
		target := choices[choice].Goto
		logger.Debug("choice", "from", current.ID(), "to", target)

		if target.Reserved() == story.Menu {
			return nil
		}
		next, ok := p.Story.Resolve(target)
		if !ok {
			// validated stories never get here
			return fmt.Errorf("section %s: choice points to unknown section %s", current.ID(), target)
		}
		current = next
	}
}

// choose reads until the reader picks a valid 0-based choice index.
func (p *Player) choose(ctx context.Context, n int) (int, error) {
	for {
		input, err := p.prompt(ctx)
		if err != nil {
			return 0, err
		}
		if input == "q" || input == "quit" {
			return 0, errQuit
		}
		// a single choice can be taken with a bare enter
		if input == "" && n == 1 {
			return 0, nil
		}
		i, err := strconv.Atoi(input)
		if err != nil || i < 1 || i > n {
			fmt.Fprintf(p.Out, "  %schoose 1-%d, or q to quit%s\n", ux.Dim, n, ux.Reset)
			continue
		}
		return i - 1, nil
	}
}

// prompt reads one trimmed line, giving up when ctx is cancelled.
func (p *Player) prompt(ctx context.Context) (string, error) {
	fmt.Fprintf(p.Out, "\n%s>%s ", ux.Cyan, ux.Reset)

	type readResult struct {
		input string
		err   error
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		// a final line without a newline still counts
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- readResult{input: strings.ToLower(strings.TrimSpace(line)), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.input, r.err
	}
}
