package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_Render(t *testing.T) {
	st, err := Parse(exampleStory)
	require.NoError(t, err)
	start, _ := st.Section("START")

	want := `<div id="description">
    <p>
        this is a description
    </p>
</div>
<div id="choices"><div class="choice" data-fater-goto="FIRST">
    <span>
        yes
    </span>
</div><div class="choice" data-fater-goto="SECOND">
    <span>
        no
    </span>
</div></div>`
	assert.Equal(t, want, start.Render())
}

func TestSection_RenderParagraphsAndEscaping(t *testing.T) {
	s, err := parseOne(t, "A:\nx < y & z\n\n<b>bold</b>\n\"quote\" -> A\n---")
	require.NoError(t, err)

	out := s.Render()
	assert.Contains(t, out, "x &lt; y &amp; z\n\n&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, out, "&#34;quote&#34;")
	assert.Equal(t, 1, strings.Count(out, "<p>"))
	assert.Equal(t, 1, strings.Count(out, GotoAttr+`="A"`))
}

func TestSection_RenderSentinels(t *testing.T) {
	st, err := Parse(exampleStory)
	require.NoError(t, err)
	first, _ := st.Section("FIRST")

	out := first.Render()
	assert.Contains(t, out, `data-fater-goto="__RESTART"`)
	assert.Contains(t, out, `data-fater-goto="__MENU"`)
	assert.Contains(t, out, LabelRestart)
	assert.Contains(t, out, LabelMenu)
}
