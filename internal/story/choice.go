package story

import "strings"

const arrow = "->"

// Labels given to choices the engine synthesizes.
const (
	LabelRestart  = "Restart from beginning"
	LabelMenu     = "Return to menu"
	LabelContinue = "Continue..."
)

// Choice is a labeled edge to another section.
type Choice struct {
	Description Description
	Goto        Identifier
	// Line is the 0-based source line the choice was read from.
	Line int
}

// Shorthand reports whether the choice was written without a label.
func (c Choice) Shorthand() bool {
	return c.Description.Empty()
}

// String renders the choice the way it appears in error traces.
func (c Choice) String() string {
	return c.Description.String() + " " + arrow + " " + c.Goto.String()
}

// parseChoice reads "<label> -> TARGET". Failures are not necessarily fatal:
// while a section is still in its description a non-choice line is prose.
func parseChoice(line int, text string) (Choice, error) {
	parts := strings.Split(text, arrow)
	if len(parts) < 2 || strings.HasSuffix(parts[0], `\`) {
		return Choice{}, newError(KindMissingArrow, line, text)
	}
	if len(parts) > 2 {
		return Choice{}, newError(KindMultipleArrows, line, text)
	}

	target, err := ParseIdentifier(line, parts[1], false)
	if err != nil {
		return Choice{}, err
	}
	return Choice{
		Description: NewDescription(parts[0]),
		Goto:        target,
		Line:        line,
	}, nil
}
