package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

const SourceWebhook = "webhook"

var ErrWebhookSignature = errors.New("invalid webhook signature")

// WebhookReceiver accepts change events pushed by a database webhook signed
// with Standard Webhooks headers (webhook-id, webhook-timestamp,
// webhook-signature).
type WebhookReceiver struct {
	verifier  *standardwebhooks.Webhook
	publisher Publisher
}

func NewWebhookReceiver(secret string, publisher Publisher) (*WebhookReceiver, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is empty")
	}
	wh, err := standardwebhooks.NewWebhookRaw([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook verifier: %w", err)
	}
	return &WebhookReceiver{verifier: wh, publisher: publisher}, nil
}

// Handle verifies payload and publishes the event it carries. Events for
// other tables are acknowledged and dropped.
func (r *WebhookReceiver) Handle(payload []byte, headers http.Header) error {
	err := r.verifier.Verify(payload, headers)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookSignature, err)
	}

	ev, err := ParseEvent(payload)
	if err != nil {
		return err
	}
	if ev.Table != Table {
		slog.Debug("webhook event for other table ignored", "table", ev.Table)
		return nil
	}

	ev.Source = SourceWebhook
	slog.Info("webhook change event received", "type", ev.Op, "entry_id", ev.EntryID, "webhook_id", headers.Get("webhook-id"))
	r.publisher.Publish(ev)
	return nil
}
