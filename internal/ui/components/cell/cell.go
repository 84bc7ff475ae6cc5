package cell

import (
	"github.com/templui/scheduletable/internal/model"
)

const confirmDelete = "Are you sure you want to delete this entry?"

type Props struct {
	Entries []*model.ScheduleEntry
	// ReadOnly drops the delete controls, used for exported snapshots.
	ReadOnly bool
	Class    string
}

// ColorByType maps an entry type to its background classes. Unknown types
// fall back to green.
func ColorByType(entryType string) string {
	switch entryType {
	case model.EntryTypeMeeting:
		return "bg-purple-500 text-white"
	case model.EntryTypeTask:
		return "bg-blue-500 text-white"
	case model.EntryTypeReminder:
		return "bg-yellow-500"
	case model.EntryTypeKPI:
		return "bg-gray-700 text-white"
	default:
		return "bg-green-500 text-white"
	}
}

// Tooltip is the hover text of an entry card.
func Tooltip(e *model.ScheduleEntry) string {
	return e.Title + " - " + e.Context + " (" + e.Type + ")"
}

// Badge is the first letter of the entry type.
func Badge(entryType string) string {
	for _, r := range entryType {
		return string(r)
	}
	return ""
}

func deleteURL(id string) string {
	return "/entries/" + id
}
