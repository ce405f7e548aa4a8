package story

import (
	"html/template"
	"strings"
)

// GotoAttr is the data attribute carrying a choice's target in rendered HTML.
const GotoAttr = "data-fater-goto"

var sectionTmpl = template.Must(template.New("section").Parse(`<div id="description">
    <p>
        {{.Description}}
    </p>
</div>
<div id="choices">{{range .Choices}}<div class="choice" data-fater-goto="{{.Goto}}">
    <span>
        {{.Description}}
    </span>
</div>{{end}}</div>`))

// Render produces the HTML fragment for a section: its description in a
// single paragraph element, followed by one clickable element per choice.
func (s *Section) Render() string {
	var b strings.Builder
	data := struct {
		Description string
		Choices     []Choice
	}{
		Description: s.description.String(),
		Choices:     s.choices,
	}
	// the template is fixed and its data cannot fail to render
	if err := sectionTmpl.Execute(&b, data); err != nil {
		panic(err)
	}
	return b.String()
}
