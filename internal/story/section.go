package story

import "strings"

const separator = "---"

// sourceLine is one line of input that survived comment filtering. num is the
// 0-based position in the original text.
type sourceLine struct {
	num  int
	text string
}

// Section is a named node of the story graph.
type Section struct {
	id          Identifier
	description Description
	choices     []Choice
	line        int
}

// ID returns the section's identifier.
func (s *Section) ID() Identifier { return s.id }

// Line returns the 0-based source line of the section header.
func (s *Section) Line() int { return s.line }

// Description returns a copy of the section's prose.
func (s *Section) Description() Description {
	return append(Description(nil), s.description...)
}

// Choices returns a copy of the section's outgoing choices, after the
// shorthand rewrite.
func (s *Section) Choices() []Choice {
	out := make([]Choice, len(s.choices))
	for i, c := range s.choices {
		c.Description = append(Description(nil), c.Description...)
		out[i] = c
	}
	return out
}

// parseSection reads one section starting at lines[pos], which must be the
// header. It returns the section and the index to resume from.
func parseSection(lines []sourceLine, pos int) (*Section, int, error) {
	header := lines[pos]
	id, err := ParseIdentifier(header.num, header.text, true)
	if err != nil {
		return nil, pos, err
	}
	pos++

	var (
		raw        strings.Builder
		choices    []Choice
		reached    bool
		terminated bool
		last       = header
	)
	for ; pos < len(lines); pos++ {
		cur := lines[pos]
		last = cur
		text := strings.TrimSpace(cur.text)

		// padding between choices carries no meaning
		if text == "" && reached {
			continue
		}

		if text == separator {
			if !reached {
				return nil, pos, newError(KindExpectedChoice, cur.num, text)
			}
			terminated = true
			pos++
			break
		}

		choice, err := parseChoice(cur.num, text)
		if err != nil {
			if reached {
				return nil, pos, err
			}
			raw.WriteString(text)
			raw.WriteByte('\n')
			continue
		}
		reached = true
		choices = append(choices, choice)
	}

	desc := NewDescription(raw.String())
	switch {
	case desc.Empty():
		return nil, pos, newError(KindExpectedDescription, last.num, last.text)
	case len(choices) == 0:
		return nil, pos, newError(KindExpectedChoice, last.num, last.text)
	case !terminated:
		return nil, pos, newError(KindMissingTerminator, last.num, last.text)
	}

	if id.Reserved() != NotReserved {
		return nil, pos, newError(KindReservedKeyUsage, header.num, header.text)
	}

	choices, err = rewriteChoices(choices)
	if err != nil {
		return nil, pos, err
	}

	return &Section{
		id:          id,
		description: desc,
		choices:     choices,
		line:        header.num,
	}, pos, nil
}

// rewriteChoices rejects explicit sentinel targets and expands the shorthand
// form: a lone unlabeled choice becomes "Continue...", and a lone unlabeled
// choice to END becomes the restart and menu pair.
func rewriteChoices(choices []Choice) ([]Choice, error) {
	for _, c := range choices {
		if c.Goto.Reserved().Sentinel() {
			return nil, newError(KindReservedKeyUsage, c.Line, strings.TrimSpace(c.String()))
		}
	}

	for i, c := range choices {
		if c.Shorthand() {
			if len(choices) != 1 {
				return nil, newError(KindChoiceShorthandNotLone, c.Line, strings.TrimSpace(c.String()))
			}
			if c.Goto.Reserved() == End {
				return []Choice{
					{Description: NewDescription(LabelRestart), Goto: IdentRestart, Line: c.Line},
					{Description: NewDescription(LabelMenu), Goto: IdentMenu, Line: c.Line},
				}, nil
			}
			choices[i].Description = NewDescription(LabelContinue)
			break
		}
		if c.Goto.Reserved() == End {
			return nil, newError(KindInvalidEnd, c.Line, c.String())
		}
	}
	return choices, nil
}
