// Package notify carries advisory change events out of the issue store.
// Delivery is best-effort: a failed publish is logged and never rolls back
// the store write that produced it.
package notify

import (
	"context"
	"log"
)

// Event types published on issue lifecycle changes.
const (
	IssueCreated       = "issue.created"
	IssueUpdated       = "issue.updated"
	IssueAssigned      = "issue.assigned"
	IssueStatusChanged = "issue.status_changed"
)

// Event is an advisory record of a change to the issue store.
type Event struct {
	Type     string `json:"type"`
	IssueID  string `json:"issueId"`
	WorkerID string `json:"workerId,omitempty"`
	Status   string `json:"status,omitempty"`
	At       int64  `json:"at"`
}

// Publisher delivers change events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards every event. Used when no channel is configured and in tests.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Multi fans an event out to every configured publisher. Individual failures
// are logged and do not stop the fan-out.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			log.Printf("Failed to publish %s event for issue %s: %v", ev.Type, ev.IssueID, err)
		}
	}
	return nil
}

func (m Multi) Close() error {
	for _, p := range m {
		if err := p.Close(); err != nil {
			log.Printf("Failed to close publisher: %v", err)
		}
	}
	return nil
}
