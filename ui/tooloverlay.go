package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folio/model"
)

// renderToolOverlay draws the full-screen view of a generated study
// artifact. Content that has not arrived yet shows a loading line;
// an artifact that arrived empty shows an empty state instead of a
// blank modal.
func (a AppView) renderToolOverlay(width, height int) string {
	idx := a.dataModel.MessageIndexByID(a.toolPanel.overlayMsgID)
	if idx < 0 {
		return a.renderOverlayFrame(width, height, "Tool", DimStyle.Render("This tool is no longer available."))
	}
	msg := &a.dataModel.Messages[idx]
	if msg.Tool == nil {
		return a.renderOverlayFrame(width, height, "Tool", DimStyle.Render("This message has no tool attached."))
	}

	title := msg.Tool.Type.DisplayName()

	if !msg.Tool.Loaded() {
		body := a.toolPanel.loadingSpinner.View() + " " + DimStyle.Render("Loading...")
		return a.renderOverlayFrame(width, height, title, body)
	}

	payload := msg.Tool.Payload
	if payload.Empty() {
		body := DimStyle.Render("Nothing was generated for this selection.\nTry a larger passage.")
		return a.renderOverlayFrame(width, height, title, body)
	}

	var body string
	switch msg.Tool.Type {
	case model.ToolFlashcard:
		body = renderFlashcards(payload.Flashcards)
	case model.ToolQuiz:
		body = renderQuiz(payload.Questions)
	case model.ToolDiagram:
		body = renderDiagrams(payload.Diagrams)
	case model.ToolGame:
		body = payload.Game
	default:
		body = msg.Content
	}

	return a.renderOverlayFrame(width, height, title, body)
}

func (a AppView) renderOverlayFrame(width, height int, title, body string) string {
	modalWidth := 70
	if width < modalWidth+6 {
		modalWidth = width - 6
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(title)

	maxBodyHeight := height - 8
	bodyLines := strings.Split(body, "\n")
	if maxBodyHeight > 0 && len(bodyLines) > maxBodyHeight {
		bodyLines = append(bodyLines[:maxBodyHeight], DimStyle.Render("…"))
	}

	bodySection := lipgloss.NewStyle().
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Padding(1, 0).
		Render(strings.Join(bodyLines, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render("Press Esc to close")

	content := strings.Join([]string{titleSection, bodySection, footerSection}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderFlashcards(cards []model.Flashcard) string {
	var b strings.Builder
	for i, card := range cards {
		fmt.Fprintf(&b, "%s %s\n", SelectedStyle.Render(fmt.Sprintf("Card %d", i+1)), card.Front)
		fmt.Fprintf(&b, "  %s\n", card.Back)
		if i < len(cards)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderQuiz(questions []model.QuizQuestion) string {
	var b strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&b, "%s %s\n", SelectedStyle.Render(fmt.Sprintf("Q%d.", i+1)), q.Question)
		for j, choice := range q.Choices {
			marker := " "
			if j == q.Answer {
				marker = UserStyle.Render("✓")
			}
			fmt.Fprintf(&b, "  %s %c) %s\n", marker, 'a'+j, choice)
		}
		if i < len(questions)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderDiagrams(diagrams []string) string {
	return strings.Join(diagrams, "\n\n"+strings.Repeat("─", 30)+"\n\n")
}
