package story

import (
	"errors"
	"fmt"
)

// Kind classifies a parse failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindIdentifierChar
	KindMissingColon
	KindUnexpectedColon
	KindMissingAlphabetic
	KindMissingArrow
	KindMultipleArrows
	KindExpectedChoice
	KindExpectedDescription
	KindMissingTerminator
	KindDuplicateSections
	KindDanglingGoto
	KindInvalidEnd
	KindChoiceShorthandNotLone
	KindReservedKeyUsage
	KindMissingStart
)

var kindMessages = map[Kind]string{
	KindUnknown:                "unknown error",
	KindIdentifierChar:         "invalid character in section identifier",
	KindMissingColon:           "section definition is missing its trailing ':'",
	KindUnexpectedColon:        "section reference must not end with ':'",
	KindMissingAlphabetic:      "section identifier needs at least one letter",
	KindMissingArrow:           "choice is missing '->'",
	KindMultipleArrows:         "choice has more than one '->'",
	KindExpectedChoice:         "expected a choice",
	KindExpectedDescription:    "section has no description",
	KindMissingTerminator:      "section is not terminated by '---'",
	KindDuplicateSections:      "section is defined more than once",
	KindDanglingGoto:           "choice points to an undefined section",
	KindInvalidEnd:             "END is only valid as a lone '-> END' choice",
	KindChoiceShorthandNotLone: "a choice without a label must be the only choice",
	KindReservedKeyUsage:       "END, __RESTART and __MENU are reserved",
	KindMissingStart:           "story has no start section",
}

func (k Kind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseError is the single failure type of the parser. Line is 0-based;
// Error renders it 1-based.
type ParseError struct {
	Kind Kind
	Line int
	Text string

	// Char is set for KindIdentifierChar.
	Char rune
	// Duplicate holds the new and the previously defined section for
	// KindDuplicateSections.
	Duplicate [2]*Section
}

func newError(kind Kind, line int, text string) *ParseError {
	return &ParseError{Kind: kind, Line: line, Text: text}
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case KindIdentifierChar:
		msg = fmt.Sprintf("%s %q", msg, e.Char)
	case KindDuplicateSections:
		if e.Duplicate[1] != nil {
			msg = fmt.Sprintf("%s (first defined on line %d)", msg, e.Duplicate[1].Line()+1)
		}
	}
	if e.Text == "" {
		return fmt.Sprintf("line %d: %s", e.Line+1, msg)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line+1, msg, e.Text)
}

// DisplayLine returns the 1-based line number shown to users.
func (e *ParseError) DisplayLine() int {
	return e.Line + 1
}

// KindOf returns the Kind of err if it is (or wraps) a *ParseError, and
// KindUnknown otherwise.
func KindOf(err error) Kind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
