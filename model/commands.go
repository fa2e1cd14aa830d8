package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"folio/config"
)

// LoadStudyData fetches the session's study data from the study service
func (m *Model) LoadStudyData() tea.Cmd {
	if m.Services.Study == nil {
		return nil
	}
	svc := m.Services.Study
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		data, err := svc.LoadStudyData(ctx)
		return StudyDataLoadedMsg{Data: data, Err: err}
	}
}

// LoadHistory fetches prior chat turns for the current session
func (m *Model) LoadHistory() tea.Cmd {
	if m.Services.History == nil || m.Study == nil {
		return nil
	}
	svc := m.Services.History
	sessionID := m.Study.ChatSessionID
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		turns, err := svc.History(ctx, sessionID)
		return HistoryLoadedMsg{Turns: turns, Err: err}
	}
}

// RecordPosition reports the current position to the persistence sink.
// Fire-and-forget: errors are logged, never surfaced.
func (m *Model) RecordPosition() tea.Cmd {
	if m.Services.Positions == nil {
		return nil
	}
	sink := m.Services.Positions
	pos := m.Position
	return func() tea.Msg {
		err := sink.RecordPosition(pos.Page, pos.SectionID, pos.ChapterID)
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] position record failed: %v", err)
		}
		return PositionRecordedMsg{Err: err}
	}
}
