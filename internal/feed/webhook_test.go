package feed

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-webhook-secret"

func signedHeaders(t *testing.T, payload []byte) http.Header {
	t.Helper()

	wh, err := standardwebhooks.NewWebhookRaw([]byte(testSecret))
	require.NoError(t, err)

	now := time.Now()
	sig, err := wh.Sign("msg_1", now, payload)
	require.NoError(t, err)

	h := http.Header{}
	h.Set("webhook-id", "msg_1")
	h.Set("webhook-timestamp", strconv.FormatInt(now.Unix(), 10))
	h.Set("webhook-signature", sig)
	return h
}

func TestWebhook_PublishesVerifiedEvent(t *testing.T) {
	broker := NewBroker()
	sub := broker.Subscribe()
	defer sub.Close()

	rcv, err := NewWebhookReceiver(testSecret, broker)
	require.NoError(t, err)

	payload := []byte(`{"type":"delete","table":"schedule_entries","id":"e1"}`)
	err = rcv.Handle(payload, signedHeaders(t, payload))
	require.NoError(t, err)

	select {
	case ev := <-sub.C:
		assert.Equal(t, OpDelete, ev.Op)
		assert.Equal(t, "e1", ev.EntryID)
		assert.Equal(t, SourceWebhook, ev.Source)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	broker := NewBroker()
	sub := broker.Subscribe()
	defer sub.Close()

	rcv, err := NewWebhookReceiver(testSecret, broker)
	require.NoError(t, err)

	payload := []byte(`{"type":"INSERT","table":"schedule_entries"}`)
	headers := signedHeaders(t, payload)

	err = rcv.Handle([]byte(`{"type":"DELETE","table":"schedule_entries"}`), headers)
	assert.ErrorIs(t, err, ErrWebhookSignature)
	assert.Empty(t, sub.C)
}

func TestWebhook_IgnoresOtherTables(t *testing.T) {
	broker := NewBroker()
	sub := broker.Subscribe()
	defer sub.Close()

	rcv, err := NewWebhookReceiver(testSecret, broker)
	require.NoError(t, err)

	payload := []byte(`{"type":"INSERT","table":"users"}`)
	require.NoError(t, rcv.Handle(payload, signedHeaders(t, payload)))
	assert.Empty(t, sub.C)
}

func TestWebhook_RequiresSecret(t *testing.T) {
	_, err := NewWebhookReceiver("", NewBroker())
	assert.Error(t, err)
}
