package pages

import (
	"github.com/templui/scheduletable/internal/grid"
)

const (
	GridID       = "schedule-grid"
	EmptyMessage = "No entries found. Add some using the form above."

	// EntryAddedEvent is sent in HX-Trigger after a local mutation. The grid
	// refetches itself when it sees it.
	EntryAddedEvent = "entryAdded"
)

type GridProps struct {
	View grid.View
	// OOB marks the fragment for an out-of-band swap, used for websocket pushes.
	OOB              bool
	SnapshotsEnabled bool
	// ReadOnly renders the table without controls, for exported snapshots.
	ReadOnly bool
}
