// Package feed carries change notifications for the schedule_entries table.
//
// Every source (the in-process data access layer, the Postgres trigger, the
// Redis relay and signed database webhooks) publishes into a Broker. Live grid
// sessions subscribe to the Broker and treat any event as a resync signal.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const Table = "schedule_entries"

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Event is one change notification. Subscribers may ignore the payload.
type Event struct {
	Op      Op     `json:"type"`
	Table   string `json:"table"`
	EntryID string `json:"id,omitempty"`
	Source  string `json:"-"`
}

// Publisher accepts change events. Publish never blocks.
type Publisher interface {
	Publish(e Event)
}

// ParseEvent decodes the JSON notification payload shared by the Postgres
// trigger, the Redis relay and database webhooks.
func ParseEvent(payload []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(payload, &e)
	if err != nil {
		return Event{}, fmt.Errorf("failed to decode change event: %w", err)
	}

	e.Op = Op(strings.ToUpper(string(e.Op)))
	switch e.Op {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return Event{}, fmt.Errorf("unknown change event type %q", e.Op)
	}

	if e.Table == "" {
		e.Table = Table
	}
	return e, nil
}

// Runner is a long-lived feed source started alongside the HTTP server.
type Runner interface {
	Name() string
	Run(ctx context.Context) error
}
