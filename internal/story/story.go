// Package story parses and validates the fater story format: named sections
// of prose, each ending in labeled choices that link to other sections.
//
//	START:
//	You wake up in a dark room.
//
//	Open the door -> HALLWAY
//	Go back to sleep -> END_SLEEP
//	---
//
// Lines starting with '#' are comments. A lone unlabeled choice ("-> NEXT")
// continues to NEXT; "-> END" finishes the story and expands into a restart
// and a menu choice.
package story

import (
	"strings"
)

// DefaultStart is the section a story begins at unless configured otherwise.
const DefaultStart Identifier = "START"

// Options tunes graph-level validation.
type Options struct {
	// RequireStart rejects stories that do not define Start.
	RequireStart bool
	// Start names the entry section. Empty means DefaultStart.
	Start Identifier
}

func (o Options) start() Identifier {
	if o.Start == "" {
		return DefaultStart
	}
	return o.Start
}

// Story is a validated story graph. It is never mutated after Parse returns
// and is safe for concurrent readers.
type Story struct {
	sections map[Identifier]*Section
	order    []Identifier
	start    Identifier
}

// Parse parses text with default options. An input with no sections yields an
// empty Story.
func Parse(text string) (*Story, error) {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions parses and validates text. The first problem found aborts
// the parse; no partial Story is returned.
func ParseWithOptions(text string, opts Options) (*Story, error) {
	lines := splitLines(text)
	st := &Story{
		sections: make(map[Identifier]*Section),
		start:    opts.start(),
	}

	for pos := 0; pos < len(lines); {
		if strings.TrimSpace(lines[pos].text) == "" {
			pos++
			continue
		}

		header := lines[pos]
		section, next, err := parseSection(lines, pos)
		if err != nil {
			return nil, err
		}
		if prev, ok := st.sections[section.id]; ok {
			err := newError(KindDuplicateSections, header.num, header.text)
			err.Duplicate = [2]*Section{section, prev}
			return nil, err
		}
		st.sections[section.id] = section
		st.order = append(st.order, section.id)
		pos = next
	}

	if err := st.validate(); err != nil {
		return nil, err
	}

	if opts.RequireStart {
		if _, ok := st.sections[st.start]; !ok {
			return nil, newError(KindMissingStart, 0, st.start.String())
		}
	}
	return st, nil
}

// validate checks that every choice resolves, in source order.
func (st *Story) validate() error {
	for _, id := range st.order {
		section := st.sections[id]
		for _, c := range section.choices {
			if c.Goto.Reserved().Sentinel() {
				continue
			}
			if _, ok := st.sections[c.Goto]; !ok {
				return newError(KindDanglingGoto, section.line, c.String())
			}
		}
	}
	return nil
}

// splitLines breaks text into lines and drops comments, keeping original
// line numbers.
func splitLines(text string) []sourceLine {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]sourceLine, 0, len(raw))
	for i, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if strings.HasPrefix(l, "#") {
			continue
		}
		lines = append(lines, sourceLine{num: i, text: l})
	}
	return lines
}

// Section looks up a section by identifier.
func (st *Story) Section(id Identifier) (*Section, bool) {
	s, ok := st.sections[id]
	return s, ok
}

// Sections returns every section in source order.
func (st *Story) Sections() []*Section {
	out := make([]*Section, len(st.order))
	for i, id := range st.order {
		out[i] = st.sections[id]
	}
	return out
}

// Len returns the number of sections.
func (st *Story) Len() int {
	return len(st.order)
}

// Start returns the identifier of the entry section. It may be undefined in
// stories parsed without Options.RequireStart.
func (st *Story) Start() Identifier {
	return st.start
}

// Resolve maps a choice target to the section a reader should see next.
// __RESTART resolves to the start section; __MENU has no section and reports
// false, as does any undefined target.
func (st *Story) Resolve(target Identifier) (*Section, bool) {
	switch target.Reserved() {
	case Restart:
		return st.Section(st.start)
	case Menu, End:
		return nil, false
	}
	return st.Section(target)
}
