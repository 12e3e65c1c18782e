// Package events publishes ledger changes to interested consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type is the kind of ledger change. It doubles as the AMQP routing key.
type Type string

const (
	ExpenseRecorded     Type = "expense.recorded"
	ExpenseDeleted      Type = "expense.deleted"
	SettlementRecorded  Type = "settlement.recorded"
	SettlementConfirmed Type = "settlement.confirmed"
)

// Event describes one committed ledger change.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	GroupID    string    `json:"group_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	SubjectID  string    `json:"subject_id"`
	Amount     string    `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event with a fresh ID and the current time.
func New(typ Type, groupID, subjectID string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       typ,
		GroupID:    groupID,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON serializes the event body.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON parses an event body.
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events after the change they describe has been committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
