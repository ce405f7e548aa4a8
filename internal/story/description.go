package story

import "strings"

// Paragraph is a block of prose with its line breaks folded into spaces.
type Paragraph string

// NewParagraph normalizes raw text into a Paragraph.
func NewParagraph(raw string) Paragraph {
	return Paragraph(strings.TrimSpace(strings.ReplaceAll(raw, "\n", " ")))
}

// Description is prose in narrative order. An empty Description is how a
// shorthand choice is recognized.
type Description []Paragraph

// NewDescription splits raw text into paragraphs on blank lines.
func NewDescription(raw string) Description {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}

	var desc Description
	for _, block := range strings.Split(strings.Join(lines, "\n"), "\n\n") {
		// three or more newlines leave empty fragments behind
		if p := NewParagraph(block); p != "" {
			desc = append(desc, p)
		}
	}
	return desc
}

// Empty reports whether d has no paragraphs.
func (d Description) Empty() bool {
	return len(d) == 0
}

func (d Description) String() string {
	parts := make([]string, len(d))
	for i, p := range d {
		parts[i] = string(p)
	}
	return strings.Join(parts, "\n\n")
}
