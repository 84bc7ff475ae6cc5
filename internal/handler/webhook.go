package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/scheduletable/internal/feed"
)

type WebhookHandler struct {
	receiver *feed.WebhookReceiver
}

// NewWebhookHandler accepts a nil receiver, which disables the endpoint.
func NewWebhookHandler(receiver *feed.WebhookReceiver) *WebhookHandler {
	return &WebhookHandler{
		receiver: receiver,
	}
}

// ScheduleChanges receives database change webhooks and publishes them to
// live sessions.
func (h *WebhookHandler) ScheduleChanges(w http.ResponseWriter, r *http.Request) {
	if h.receiver == nil {
		http.Error(w, "Webhooks are not configured", http.StatusServiceUnavailable)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		http.Error(w, "Failed to read payload", http.StatusBadRequest)
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	err = h.receiver.Handle(payload, r.Header)
	if errors.Is(err, feed.ErrWebhookSignature) {
		slog.Warn("webhook signature rejected", "error", err, "webhook_id", r.Header.Get("webhook-id"))
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}
	if err != nil {
		slog.Error("failed to handle webhook", "error", err)
		http.Error(w, "Failed to process webhook", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
