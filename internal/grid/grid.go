// Package grid keeps a rendering context's list of schedule entries in step
// with the store.
//
// A Grid never merges changes incrementally. Any change signal triggers a
// full refetch that replaces the list wholesale, which keeps the grid
// consistent with the store after every notification at the cost of one
// round trip per change.
package grid

import (
	"context"
	"log/slog"
	"sync"

	"github.com/templui/scheduletable/internal/feed"
	"github.com/templui/scheduletable/internal/metrics"
	"github.com/templui/scheduletable/internal/model"
)

// Lister reads every entry in insertion order.
type Lister interface {
	Snapshot() ([]*model.ScheduleEntry, error)
}

type Grid struct {
	lister  Lister
	metrics *metrics.Metrics

	mu      sync.RWMutex
	entries []*model.ScheduleEntry
}

// New returns a grid seeded with a snapshot taken by the caller, typically
// the one rendered into the page at load time.
func New(lister Lister, initial []*model.ScheduleEntry, m *metrics.Metrics) *Grid {
	return &Grid{
		lister:  lister,
		metrics: m,
		entries: initial,
	}
}

// Entries returns a copy of the current list.
func (g *Grid) Entries() []*model.ScheduleEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*model.ScheduleEntry, len(g.entries))
	copy(out, g.entries)
	return out
}

func (g *Grid) View() View {
	return Build(g.Entries())
}

// Resync refetches every entry and replaces the list. On error the previous
// list is kept.
func (g *Grid) Resync() error {
	entries, err := g.lister.Snapshot()
	g.metrics.Resync(err)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = entries
	return nil
}

// Mount subscribes to broker, resyncs once, and then resyncs on every event
// until ctx is done, the broker closes, or onChange returns an error.
// onChange is called with the new view after each successful resync,
// including the first one, so changes made between the caller's snapshot and
// the subscription still reach it. The subscription is released before Mount
// returns.
func (g *Grid) Mount(ctx context.Context, broker *feed.Broker, onChange func(View) error) error {
	sub := broker.Subscribe()
	defer sub.Close()

	err := g.sync(onChange, "mount", "")
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.C:
			if !ok {
				return nil
			}

			// the event's type and payload are deliberately ignored
			err := g.sync(onChange, string(ev.Op), ev.Source)
			if err != nil {
				return err
			}
		}
	}
}

// sync resyncs and hands the view to onChange. A failed resync is logged and
// swallowed; only onChange errors end the session.
func (g *Grid) sync(onChange func(View) error, trigger, source string) error {
	err := g.Resync()
	if err != nil {
		slog.Error("grid resync failed", "error", err, "trigger", trigger, "source", source)
		return nil
	}

	if onChange == nil {
		return nil
	}
	return onChange(g.View())
}
