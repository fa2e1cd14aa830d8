// Package service implements the core's external collaborators as
// deterministic in-process stubs: study data, chat history, tool
// generation, transcription and position recording. The interfaces live
// in the model package; real backends would replace these constructors
// without touching the coordination logic.
package service

import (
	"time"

	"folio/model"
)

// Options tune the stubs. Latency simulates backend round trips and is
// honored under the caller's context, so timeouts behave like the real
// thing.
type Options struct {
	Latency time.Duration
}

// DefaultOptions gives stubs a human-noticeable delay
func DefaultOptions() Options {
	return Options{Latency: 400 * time.Millisecond}
}

// New wires all stub services into a model.Services bundle
func New(opts Options) model.Services {
	library := newToolLibrary()
	return model.Services{
		Study:       &StubStudy{opts: opts},
		History:     &StubHistory{opts: opts},
		Chat:        &StubChat{opts: opts, library: library},
		Tools:       &StubTools{opts: opts, library: library},
		Transcriber: &StubTranscriber{opts: opts},
		Positions:   &StubPositions{},
	}
}
