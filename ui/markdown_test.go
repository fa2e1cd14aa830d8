package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownProducesOutput(t *testing.T) {
	out := renderMarkdown("# Title\n\nSome *emphasis* and a paragraph.", 60)
	if out == "" {
		t.Fatal("empty render")
	}
	if !strings.Contains(out, "Title") {
		t.Error("heading text missing from output")
	}
}

func TestRenderMarkdownNarrowWidthFloor(t *testing.T) {
	// Must not panic at degenerate widths
	out := renderMarkdown("some text that needs wrapping somewhere", 2)
	if out == "" {
		t.Error("empty render at narrow width")
	}
}

func TestPreprocessLinks(t *testing.T) {
	in := "see [the paper](https://example.com/time) for details"
	out := preprocessLinks(in)
	if strings.Contains(out, "[the paper]") {
		t.Errorf("link syntax not stripped: %q", out)
	}
	if !strings.Contains(out, "https://example.com/time") {
		t.Errorf("url lost: %q", out)
	}
}

func TestFixInlineCode(t *testing.T) {
	in := "before \x1b[44;3mcode\x1b[0m after"
	out := fixInlineCode(in)
	if strings.Contains(out, "[44;3m") {
		t.Errorf("blue background styling still present: %q", out)
	}
	if !strings.Contains(out, "\x1b[31mcode\x1b[0m") {
		t.Errorf("red restyle missing: %q", out)
	}
}
