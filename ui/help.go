package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.dataModel.Keys

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("Folio " + a.dataModel.Version + " - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global"),
		fmt.Sprintf("• %-13s Toggle table of contents", kb.DisplayActionKey("toggle_contents")),
		fmt.Sprintf("• %-13s Hide/show document", kb.DisplayActionKey("hide_document")),
		fmt.Sprintf("• %-13s Cycle pane focus", kb.DisplayActionKey("focus_next_pane")),
		fmt.Sprintf("• %-13s Grow tool panel", kb.DisplayActionKey("grow_tool_panel")),
		fmt.Sprintf("• %-13s Shrink tool panel", kb.DisplayActionKey("shrink_tool_panel")),
		fmt.Sprintf("• %-13s Toggle this help", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	readingActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Document"),
		fmt.Sprintf("• %-13s Next page", kb.DisplayActionKey("next_page")),
		fmt.Sprintf("• %-13s Previous page", kb.DisplayActionKey("prev_page")),
		fmt.Sprintf("• %-13s Select text", kb.DisplayActionKey("select_mode")),
		fmt.Sprintf("• %-13s Copy selection", kb.DisplayActionKey("copy_selection")),
		fmt.Sprintf("• %-13s Quote selection in chat", kb.DisplayActionKey("quote_selection")),
		fmt.Sprintf("• %-13s Flashcards from selection", kb.DisplayActionKey("selection_flashcards")),
		fmt.Sprintf("• %-13s Quiz from selection", kb.DisplayActionKey("selection_quiz")),
		fmt.Sprintf("• %-13s Diagram from selection", kb.DisplayActionKey("selection_diagram")),
		fmt.Sprintf("• %-13s Game from selection", kb.DisplayActionKey("selection_game")),
	)

	contentsActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Contents"),
		fmt.Sprintf("• %-13s Move down", kb.DisplayActionKey("contents_down")),
		fmt.Sprintf("• %-13s Move up", kb.DisplayActionKey("contents_up")),
		fmt.Sprintf("• %-13s Expand/collapse chapter", kb.DisplayActionKey("contents_toggle")),
		fmt.Sprintf("• %-13s Open entry", kb.DisplayActionKey("contents_open")),
		fmt.Sprintf("• %-13s Filter entries", kb.DisplayActionKey("contents_filter")),
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Study Tools"),
		"• Enter         Send message",
		fmt.Sprintf("• %-13s Newline in message", kb.DisplayActionKey("insert_newline")),
		fmt.Sprintf("• %-13s Start/stop voice input", kb.DisplayActionKey("record_toggle")),
		fmt.Sprintf("• %-13s Open latest tool", kb.DisplayActionKey("open_tool")),
		fmt.Sprintf("• %-13s Copy last reply", kb.DisplayActionKey("yank_reply")),
		fmt.Sprintf("• %-13s Clear input", kb.DisplayActionKey("clear_input")),
	)

	left := lipgloss.JoinVertical(lipgloss.Left, globalActions, "", readingActions)
	right := lipgloss.JoinVertical(lipgloss.Left, contentsActions, "", chatActions)

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(4).Render(left),
		right,
	)

	footer := DimStyle.Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", columns, "", footer)

	boxed := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxed)
}
