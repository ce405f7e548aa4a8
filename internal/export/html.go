package export

import (
	"bytes"
	"html/template"

	"github.com/jorge-barreto/fater/internal/story"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="ifid" content="{{.Doc.IFID}}">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 40em; margin: 3em auto; line-height: 1.5; }
#description p { white-space: pre-line; }
.choice { cursor: pointer; margin: .5em 0; padding: .3em .6em; border-left: 3px solid #888; }
.choice:hover { border-color: #000; background: #f4f4f4; }
</style>
</head>
<body>
<div id="menu">
<h1>{{.Title}}</h1>
<div class="choice" id="fater-start">Start</div>
</div>
<div id="layout" hidden></div>
{{range .Sections}}<template id="fater-{{.ID}}">{{.HTML}}</template>
{{end}}<script>
(function () {
  var start = {{.Doc.Start}};
  var menu = document.getElementById("menu");
  var layout = document.getElementById("layout");
  function show(id) {
    if (id === "__MENU") { layout.hidden = true; menu.hidden = false; return; }
    if (id === "__RESTART") { id = start; }
    var tmpl = document.getElementById("fater-" + id);
    if (!tmpl) { return; }
    menu.hidden = true;
    layout.hidden = false;
    layout.replaceChildren(tmpl.content.cloneNode(true));
  }
  document.getElementById("fater-start").addEventListener("click", function () { show(start); });
  layout.addEventListener("click", function (ev) {
    var choice = ev.target.closest(".choice");
    if (choice) { show(choice.getAttribute("data-fater-goto")); }
  });
{{- if .LiveReload}}
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + {{.LiveReload}});
  ws.onmessage = function () { location.reload(); };
{{- end}}
})();
</script>
</body>
</html>
`))

type pageSection struct {
	ID   string
	HTML template.HTML
}

// PageOptions tunes RenderPage.
type PageOptions struct {
	// LiveReload is a websocket path; any message on it reloads the page.
	LiveReload string
}

// RenderPage builds a self-contained page holding every section fragment.
// Clicking a choice swaps in the fragment it points to; __RESTART jumps to
// the start section and __MENU returns to the title screen.
func RenderPage(st *story.Story, doc Document, opts PageOptions) ([]byte, error) {
	title := doc.Name
	if title == "" {
		title = "fater"
	}

	data := struct {
		Title      string
		Doc        Document
		Sections   []pageSection
		LiveReload string
	}{
		Title:      title,
		Doc:        doc,
		LiveReload: opts.LiveReload,
	}
	for _, s := range st.Sections() {
		// Render escapes all story text
		data.Sections = append(data.Sections, pageSection{ID: s.ID().String(), HTML: template.HTML(s.Render())})
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeHTML(st *story.Story, doc Document) ([]byte, error) {
	return RenderPage(st, doc, PageOptions{})
}
