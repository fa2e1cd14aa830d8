package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Transcribe runs the captured clip through the transcription service.
// The recognized text is appended to the compose box on completion.
func (m *Model) Transcribe(clip AudioClip) tea.Cmd {
	if m.Services.Transcriber == nil {
		return nil
	}
	svc := m.Services.Transcriber
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		text, err := svc.Transcribe(ctx, clip)
		return TranscriptionMsg{Text: text, Err: err}
	}
}
