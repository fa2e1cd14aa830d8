package ui

import (
	"regexp"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"folio/config"
	"folio/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
)

// renderMarkdown renders markdown source for terminal display.
// Autolink is disabled so URLs stay plain text and the terminal
// emulator keeps them clickable.
func renderMarkdown(content string, width int) string {
	if width < 10 {
		width = 10
	}
	content = preprocessLinks(content)

	defaultExt := markdown.Extensions()
	customExt := defaultExt &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	return fixInlineCode(string(rendered))
}

// renderMessageMarkdownAsync renders a chat message off the update loop
// and reports back with the message index.
func renderMessageMarkdownAsync(messageIndex int, content string, width int) tea.Cmd {
	return func() tea.Msg {
		startTime := time.Now()
		rendered := renderMarkdown(content, width)
		if config.DebugLog != nil {
			config.DebugLog.Printf("Markdown rendered for message %d in %v", messageIndex, time.Since(startTime))
		}
		return model.MarkdownRenderedMsg{
			MessageIndex: messageIndex,
			Rendered:     rendered,
		}
	}
}

// preprocessLinks strips markdown link syntax [text](url) down to url
func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

// fixInlineCode replaces the renderer's blue-background inline code
// styling with plain red text.
func fixInlineCode(s string) string {
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}
