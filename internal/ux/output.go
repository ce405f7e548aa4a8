package ux

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jorge-barreto/fater/internal/story"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// RenderSection prints a section for the terminal: its paragraphs followed by
// numbered choices.
func RenderSection(w io.Writer, s *story.Section) {
	fmt.Fprintf(w, "\n%s══ %s ══%s\n\n", Cyan, s.ID(), Reset)
	for _, p := range s.Description() {
		fmt.Fprintf(w, "%s\n\n", p)
	}
	for i, c := range s.Choices() {
		fmt.Fprintf(w, "  %s%d)%s %s\n", Bold, i+1, Reset, c.Description)
	}
}

// ParseFailure prints a parse error with the offending source line. source
// may be empty when the input is not at hand.
func ParseFailure(w io.Writer, path string, err error, source string) {
	var pe *story.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintf(w, "%s✗ %s:%s %v\n", Red, path, Reset, err)
		return
	}

	// a missing start section belongs to no line
	if pe.Kind == story.KindMissingStart {
		fmt.Fprintf(w, "%s✗ %s:%s %s: %s\n", Red, path, Reset, pe.Kind, pe.Text)
		return
	}

	fmt.Fprintf(w, "%s✗ %s:%d:%s %s\n", Red, path, pe.DisplayLine(), Reset, pe.Kind)
	text := pe.Text
	if lines := strings.Split(source, "\n"); source != "" && pe.Line < len(lines) {
		text = strings.TrimRight(lines[pe.Line], "\r")
	}
	if text != "" {
		fmt.Fprintf(w, "  %s%4d |%s %s\n", Dim, pe.DisplayLine(), Reset, text)
	}
	if pe.Kind == story.KindDuplicateSections && pe.Duplicate[1] != nil {
		fmt.Fprintf(w, "  %sfirst defined on line %d%s\n", Dim, pe.Duplicate[1].Line()+1, Reset)
	}
	if pe.Kind == story.KindDanglingGoto {
		fmt.Fprintf(w, "  %s%s%s\n", Yellow, pe.Text, Reset)
	}
}

// CheckOK prints the one-line summary of a successful check.
func CheckOK(w io.Writer, path string, st *story.Story) {
	choices, endings := 0, 0
	for _, s := range st.Sections() {
		for _, c := range s.Choices() {
			choices++
			if c.Goto.Reserved() == story.Restart {
				endings++
			}
		}
	}
	fmt.Fprintf(w, "%s✓ %s:%s %d sections, %d choices, %d endings\n",
		Green, path, Reset, st.Len(), choices, endings)
}

// Reloaded prints a timestamped notice that a watched story re-parsed.
func Reloaded(w io.Writer, path string, st *story.Story) {
	fmt.Fprintf(w, "%s[%s]%s ", Dim, timestamp(), Reset)
	CheckOK(w, path, st)
}

// ReloadFailed prints a timestamped parse failure for a watched story.
func ReloadFailed(w io.Writer, path string, err error, source string) {
	fmt.Fprintf(w, "%s[%s]%s ", Dim, timestamp(), Reset)
	ParseFailure(w, path, err, source)
}
