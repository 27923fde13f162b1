package ui_test

import (
	"strings"
	"testing"

	"jobpilot-client/internal/ui"
)

func TestHTMLToText_Blocks(t *testing.T) {
	in := `<div><h2>About the role</h2><p>Build things.</p><ul><li>Go</li><li>SQL</li></ul></div>`
	got := ui.HTMLToText(in)

	for _, want := range []string{"About the role", "Build things.", "Go", "SQL"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<") {
		t.Errorf("tags leaked into output:\n%s", got)
	}
	// list items stay on separate lines
	if !strings.Contains(got, "Go\nSQL") {
		t.Errorf("block boundaries lost:\n%s", got)
	}
}

func TestHTMLToText_StripsScripts(t *testing.T) {
	in := `<p>Real text</p><script>alert("x")</script><style>.a{}</style>`
	got := ui.HTMLToText(in)
	if strings.Contains(got, "alert") || strings.Contains(got, ".a{}") {
		t.Errorf("script/style leaked:\n%s", got)
	}
	if !strings.Contains(got, "Real text") {
		t.Errorf("text lost:\n%s", got)
	}
}

func TestHTMLToText_PlainTextPassesThrough(t *testing.T) {
	got := ui.HTMLToText("  just   plain\u00a0text  ")
	if got != "just plain text" {
		t.Errorf("got %q", got)
	}
}
