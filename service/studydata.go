package service

import (
	"context"
	"fmt"
	"time"

	"folio/model"
)

const (
	sessionID     = "session-demo"
	historyToolID = "tool-hist-1"
)

// StubStudy serves a bundled study document: a short primer on ordering
// in distributed systems, paged markdown plus its table of contents.
type StubStudy struct {
	opts Options
}

func (s *StubStudy) LoadStudyData(ctx context.Context) (*model.StudyData, error) {
	if err := wait(ctx, s.opts.Latency); err != nil {
		return nil, err
	}
	return demoStudyData(), nil
}

func demoStudyData() *model.StudyData {
	return &model.StudyData{
		Title:         "Ordering Without Clocks",
		Author:        "Study Library",
		ChatSessionID: sessionID,
		LastRead:      model.Position{Page: 1},
		TOC: &model.TableOfContents{
			Chapters: []model.Chapter{
				{
					ID:    "ch-1",
					Title: "Events and Ordering",
					Sections: []model.Section{
						{ID: "s-1.1", Title: "Why wall clocks mislead", Page: 1},
						{ID: "s-1.2", Title: "The happened-before relation", Page: 3},
						{ID: "s-1.3", Title: "Concurrent events", Page: 5},
					},
				},
				{
					ID:    "ch-2",
					Title: "Logical Clocks",
					Sections: []model.Section{
						{ID: "s-2.1", Title: "The clock condition", Page: 6},
						{ID: "s-2.2", Title: "Lamport timestamps", Page: 8},
						{ID: "s-2.3", Title: "Total order from partial order", Page: 10},
					},
				},
				{
					// Single section duplicating the chapter title:
					// rendered directly clickable, no expand arrow.
					ID:    "ch-3",
					Title: "Vector Clocks",
					Sections: []model.Section{
						{ID: "s-3.1", Title: "Vector Clocks", Page: 12},
					},
				},
				{
					ID:    "ch-4",
					Title: "Applications",
					Sections: []model.Section{
						{ID: "s-4.1", Title: "Mutual exclusion", Page: 14},
						{ID: "s-4.2", Title: "Snapshots", Page: 16},
					},
				},
			},
		},
		Pages: demoPages(),
	}
}

func demoPages() []string {
	pages := []string{
		// 1
		"# Why wall clocks mislead\n\nDistributed systems have no shared *now*. Each machine keeps its own clock, and those clocks drift, skew, and occasionally jump backwards when operators intervene.\n\nAny protocol that compares timestamps produced on different machines is therefore comparing measurements taken with different rulers. The question **which event came first** cannot be answered by wall-clock time alone.\n\n> The order of events is a property of the communication structure of the system, not of the clocks observing it.",
		// 2
		"## Drift in practice\n\nQuartz oscillators drift on the order of seconds per day. NTP keeps clocks within milliseconds under good conditions, but *good conditions* is doing a lot of work in that sentence.\n\n- A GC pause delays the timestamping of an event after it occurred.\n- A VM migration freezes a clock entirely.\n- A leap second makes a minute with 61 seconds.\n\nEach of these breaks the naive mapping from timestamp order to event order.",
		// 3
		"# The happened-before relation\n\nInstead of time, start from causality. Define the relation `a -> b` (read: *a happened before b*) as the smallest relation such that:\n\n1. If `a` and `b` are events in the same process and `a` comes first, then `a -> b`.\n2. If `a` is the sending of a message and `b` is its receipt, then `a -> b`.\n3. If `a -> b` and `b -> c`, then `a -> c`.\n\nThis is a strict partial order over events.",
		// 4
		"## Reading the definition\n\nThe first clause captures program order. The second captures communication: information cannot arrive before it was sent. The third closes the relation under transitivity.\n\nNothing here mentions clocks. Two machines that never exchange messages, directly or indirectly, impose **no order** on each other's events.",
		// 5
		"# Concurrent events\n\nTwo events are *concurrent* when neither happened before the other. Concurrency in this sense is not about simultaneity; it is about independence. Concurrent events could have occurred in either order without any observer being able to tell the difference.\n\nMost pairs of events in a large system are concurrent. That is not a defect. It is the slack that makes distributed execution efficient.",
		// 6
		"# The clock condition\n\nA *logical clock* assigns a number `C(a)` to each event `a`. The clock is correct when it satisfies the **clock condition**:\n\n```\nif a -> b then C(a) < C(b)\n```\n\nNote the direction. The condition constrains clocks by causality. The converse does not hold: `C(a) < C(b)` tells you nothing certain about the order of `a` and `b`.",
		// 7
		"## Why the converse fails\n\nConcurrent events still receive numbers, and numbers are totally ordered. Some pair of concurrent events will always end up with `C(a) < C(b)` purely by accident of counting.\n\nMistaking the converse for the condition is the classic logical-clock bug.",
		// 8
		"# Lamport timestamps\n\nImplementing the clock condition takes two rules:\n\n1. Each process increments its counter between any two local events.\n2. Each message carries the sender's counter; on receipt, the receiver sets its counter to `max(local, received) + 1`.\n\nThat is the whole algorithm. No synchronization, no coordination, one integer per process and one per message.",
		// 9
		"## A worked example\n\nProcess P sends at local count 4; the message carries 4. Process Q, at local count 1, receives it and jumps to 5. Q's next event is numbered 6.\n\nThe receipt is causally after the send, and the numbers agree: `4 < 5`. Q's earlier events keep their small numbers; nothing claims they happened before the send.",
		// 10
		"# Total order from partial order\n\nSome protocols need every pair of events ordered. Extend timestamps with a tiebreak: order events by `(C(e), process id)`. The result is an arbitrary but *consistent* total order: every process that computes it computes the same one.\n\nArbitrary is fine. Consistent is the property that matters.",
		// 11
		"## Using the total order\n\nWith a consistent total order, replicas can apply the same operations in the same sequence without a central sequencer. The order has no physical meaning, and does not need one.",
		// 12
		"# Vector Clocks\n\nLamport timestamps compress causality into one integer and lose the ability to detect concurrency. Vector clocks keep one counter *per process*.\n\nCompare vectors componentwise: `V(a) < V(b)` exactly when `a -> b`. Incomparable vectors mean concurrent events. The converse problem of scalar clocks disappears, at the cost of O(n) space per timestamp.",
		// 13
		"## Choosing between them\n\nUse scalar clocks when you only need an order consistent with causality. Use vector clocks when you must *detect* concurrency, as in replica divergence or conflict resolution.",
		// 14
		"# Mutual exclusion\n\nThe total order yields a lock without a lock server: request the resource by timestamped broadcast, enter when your request is the smallest outstanding one, release by broadcast.\n\nEvery process sees the same request order, so no two processes believe they hold the resource at once.",
		// 15
		"## Fairness and failure\n\nRequests are served in timestamp order, so no process starves. The protocol's weakness is liveness: one silent process stalls everyone. Real systems bolt on failure detectors precisely here.",
		// 16
		"# Snapshots\n\nA consistent snapshot is a cut of the execution closed under happened-before: if the cut includes an event, it includes everything that happened before it.\n\nLogical time gives the test for closure, and marker-based protocols give a way to collect such cuts while the system keeps running. That story, however, deserves a chapter of its own.",
	}
	return pages
}

// StubHistory returns the canned prior conversation for the demo
// session. One assistant turn references a tool response by id only;
// its content is resolved on demand through the tool service.
type StubHistory struct {
	opts Options
}

func (s *StubHistory) History(ctx context.Context, id string) ([]model.HistoryTurn, error) {
	if err := wait(ctx, s.opts.Latency); err != nil {
		return nil, err
	}
	if id != sessionID {
		return nil, fmt.Errorf("unknown chat session %q", id)
	}
	base := time.Now().Add(-2 * time.Hour)
	return []model.HistoryTurn{
		{
			ID:        "turn-1",
			Role:      "user",
			Text:      "What does the clock condition actually guarantee?",
			Timestamp: base,
		},
		{
			ID:        "turn-2",
			Role:      "assistant",
			Text:      "It guarantees one direction only: causally ordered events get increasing numbers. It does not let you read causality back out of the numbers.",
			ModelID:   "stub-1",
			Timestamp: base.Add(10 * time.Second),
		},
		{
			ID:        "turn-3",
			Role:      "user",
			Text:      "Make me flashcards on that.",
			Timestamp: base.Add(40 * time.Second),
		},
		{
			ID:             "turn-4",
			Role:           "assistant",
			Text:           "Done. Two cards on the clock condition and its converse.",
			ModelID:        "stub-1",
			ToolResponseID: historyToolID,
			ToolType:       model.ToolFlashcard,
			Timestamp:      base.Add(50 * time.Second),
		},
	}, nil
}
