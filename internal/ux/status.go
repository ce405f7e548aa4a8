package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/jorge-barreto/fater/internal/story"
)

// RenderOutline prints every section in source order with its outgoing
// edges, marking the start section and sections a reader cannot get to.
func RenderOutline(w io.Writer, st *story.Story) {
	reachable := st.Reachable()

	fmt.Fprintf(w, "\n%sSections:%s\n", Bold, Reset)
	for _, s := range st.Sections() {
		marker := "  "
		if s.ID() == st.Start() {
			marker = fmt.Sprintf("%s→%s ", Yellow, Reset)
		}

		var targets []string
		for _, c := range s.Choices() {
			switch c.Goto.Reserved() {
			case story.Restart:
				targets = append(targets, Green+"restart"+Reset)
			case story.Menu:
				targets = append(targets, Green+"menu"+Reset)
			default:
				targets = append(targets, c.Goto.String())
			}
		}

		note := ""
		if !reachable[s.ID()] {
			note = fmt.Sprintf(" %s(unreachable)%s", Dim, Reset)
		}
		fmt.Fprintf(w, "  %s%s%4d%s  %-20s %s%s\n",
			marker, Dim, s.Line()+1, Reset, s.ID(), strings.Join(targets, ", "), note)
	}
	fmt.Fprintln(w)
}
