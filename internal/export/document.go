// Package export writes a parsed story out as YAML, JSON or a standalone
// HTML page. Exports are one-way; nothing reads them back.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jorge-barreto/fater/internal/story"
	"gopkg.in/yaml.v3"
)

// Meta describes the story being exported.
type Meta struct {
	Name string
	IFID string
}

type Choice struct {
	Label string `yaml:"label" json:"label"`
	Goto  string `yaml:"goto" json:"goto"`
}

type Section struct {
	ID          string   `yaml:"id" json:"id"`
	Line        int      `yaml:"line" json:"line"`
	Description []string `yaml:"description" json:"description"`
	Choices     []Choice `yaml:"choices" json:"choices"`
}

// Document is the serialized form of a story graph.
type Document struct {
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	IFID     string    `yaml:"ifid" json:"ifid"`
	Start    string    `yaml:"start" json:"start"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// NewDocument flattens st in source order. Lines are 1-based. When meta has no
// IFID a fresh one is generated.
func NewDocument(st *story.Story, meta Meta) Document {
	ifid := meta.IFID
	if ifid == "" {
		ifid = strings.ToUpper(uuid.NewString())
	}
	doc := Document{
		Name:     meta.Name,
		IFID:     ifid,
		Start:    st.Start().String(),
		Sections: make([]Section, 0, st.Len()),
	}
	for _, s := range st.Sections() {
		sec := Section{ID: s.ID().String(), Line: s.Line() + 1}
		for _, p := range s.Description() {
			sec.Description = append(sec.Description, string(p))
		}
		for _, c := range s.Choices() {
			sec.Choices = append(sec.Choices, Choice{Label: c.Description.String(), Goto: c.Goto.String()})
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}

// Format is an export file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON, FormatHTML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (must be yaml, json, or html)", s)
}

// Encode renders the story in the given format.
func Encode(st *story.Story, meta Meta, format Format) ([]byte, error) {
	doc := NewDocument(st, meta)
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := ValidateJSON(data); err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatHTML:
		return encodeHTML(st, doc)
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// Write encodes the story and writes it to path atomically.
func Write(path string, st *story.Story, meta Meta, format Format) error {
	data, err := Encode(st, meta, format)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
