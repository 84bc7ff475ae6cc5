package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// PostgresChannel is the NOTIFY channel written by the schedule_entries trigger.
const PostgresChannel = "schedule_entries_changes"

// PostgresListener forwards Postgres NOTIFY payloads to a Publisher. It holds
// one dedicated connection outside the sqlx pool for the lifetime of Run.
type PostgresListener struct {
	connString string
	channel    string
	publisher  Publisher
}

func NewPostgresListener(connString string, publisher Publisher) *PostgresListener {
	return &PostgresListener{
		connString: connString,
		channel:    PostgresChannel,
		publisher:  publisher,
	}
}

func (l *PostgresListener) Name() string { return "postgres" }

// Run listens until ctx is cancelled. A lost connection ends Run with an
// error; there is no reconnect.
func (l *PostgresListener) Run(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return fmt.Errorf("failed to connect change feed listener: %w", err)
	}
	defer func() {
		closeErr := conn.Close(context.Background())
		if closeErr != nil {
			slog.Warn("failed to close change feed connection", "error", closeErr)
		}
	}()

	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.channel, err)
	}

	slog.Info("change feed listening", "source", l.Name(), "channel", l.channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("change feed wait failed: %w", err)
		}

		event, err := ParseEvent([]byte(n.Payload))
		if err != nil {
			slog.Warn("ignoring malformed change notification", "error", err, "payload", n.Payload)
			continue
		}

		event.Source = l.Name()
		l.publisher.Publish(event)
	}
}
