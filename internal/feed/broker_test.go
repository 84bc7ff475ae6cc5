package feed

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesEverySubscriber(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe()
	c := b.Subscribe()
	defer a.Close()
	defer c.Close()

	b.Publish(Event{Op: OpInsert, EntryID: "1"})

	ev := <-a.C
	assert.Equal(t, OpInsert, ev.Op)
	assert.Equal(t, Table, ev.Table)
	assert.Equal(t, "1", (<-c.C).EntryID)
}

func TestBroker_PendingSignalsCoalesce(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe()
	defer sub.Close()

	for i := 0; i < 10; i++ {
		b.Publish(Event{Op: OpUpdate})
	}

	<-sub.C
	select {
	case ev := <-sub.C:
		t.Fatalf("expected a single pending signal, got another: %+v", ev)
	default:
	}
}

func TestBroker_CloseReleasesSubscription(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe()
	require.Equal(t, 1, b.Subscribers())

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, b.Subscribers())
	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed")

	// publishing after release must not panic or deliver
	b.Publish(Event{Op: OpDelete})
}

func TestBroker_CloseEndsAllSubscriptions(t *testing.T) {
	b := NewBroker()
	subs := []*Subscription{b.Subscribe(), b.Subscribe()}

	b.Close()
	for _, sub := range subs {
		_, ok := <-sub.C
		assert.False(t, ok)
		sub.Close()
	}

	late := b.Subscribe()
	_, ok := <-late.C
	assert.False(t, ok, "subscribing to a closed broker yields a closed channel")
	assert.Equal(t, 0, b.Subscribers())
}

func TestBroker_ConcurrentPublishAndClose(t *testing.T) {
	b := NewBroker()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Publish(Event{Op: OpInsert})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				b.Subscribe().Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, b.Subscribers())
}

func TestBroker_OnPublishHook(t *testing.T) {
	b := NewBroker()
	var seen []Op
	b.OnPublish = func(e Event) { seen = append(seen, e.Op) }

	b.Publish(Event{Op: OpInsert})
	b.Publish(Event{Op: OpDelete})

	assert.Equal(t, []Op{OpInsert, OpDelete}, seen)
}

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"insert","table":"schedule_entries","id":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, OpInsert, ev.Op)
	assert.Equal(t, "abc", ev.EntryID)

	ev, err = ParseEvent([]byte(`{"type":"DELETE"}`))
	require.NoError(t, err)
	assert.Equal(t, Table, ev.Table)

	_, err = ParseEvent([]byte(`{"type":"TRUNCATE"}`))
	assert.Error(t, err)

	_, err = ParseEvent([]byte(`not json`))
	assert.Error(t, err)
}
