package story

import "strings"

// Identifier names a section. It is both the key of a Story and the target of
// a Choice.
type Identifier string

// Reserved is the closed set of names the engine gives special meaning to.
type Reserved int

const (
	NotReserved Reserved = iota
	End                  // END: only valid as a lone shorthand target
	Restart              // __RESTART: synthesized, back to the start section
	Menu                 // __MENU: synthesized, back to the menu
)

// Spellings of the reserved keywords.
const (
	IdentEnd     Identifier = "END"
	IdentRestart Identifier = "__RESTART"
	IdentMenu    Identifier = "__MENU"
)

// Identifier returns the spelling of a reserved keyword, or "" for
// NotReserved.
func (r Reserved) Identifier() Identifier {
	switch r {
	case End:
		return IdentEnd
	case Restart:
		return IdentRestart
	case Menu:
		return IdentMenu
	}
	return ""
}

// Sentinel reports whether r is a synthesized target that always resolves.
func (r Reserved) Sentinel() bool {
	return r == Restart || r == Menu
}

// Reserved classifies id against the reserved keywords.
func (id Identifier) Reserved() Reserved {
	switch id {
	case IdentEnd:
		return End
	case IdentRestart:
		return Restart
	case IdentMenu:
		return Menu
	}
	return NotReserved
}

func (id Identifier) String() string {
	return string(id)
}

// ParseIdentifier validates a section name. In definition mode the name must
// end with a single ':' which is stripped; in reference mode a colon is an
// error. Names are [A-Z0-9_]+ with at least one letter.
func ParseIdentifier(line int, text string, definition bool) (Identifier, error) {
	text = strings.TrimSpace(text)

	foundAlphabetic := false
	colon := false
	for _, ch := range text {
		switch {
		case !colon && (ch >= 'A' && ch <= 'Z'):
			foundAlphabetic = true
		case !colon && ((ch >= '0' && ch <= '9') || ch == '_'):
		case !colon && ch == ':':
			colon = true
		default:
			err := newError(KindIdentifierChar, line, text)
			err.Char = ch
			return "", err
		}
	}

	if colon {
		text = text[:len(text)-1]
	}

	switch {
	case definition && !colon:
		return "", newError(KindMissingColon, line, text)
	case !definition && colon:
		return "", newError(KindUnexpectedColon, line, text)
	case !foundAlphabetic:
		return "", newError(KindMissingAlphabetic, line, text)
	}
	return Identifier(text), nil
}
