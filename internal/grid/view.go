package grid

import (
	"slices"

	"github.com/templui/scheduletable/internal/model"
)

// CellKey identifies one (person, time slot, day) intersection.
type CellKey struct {
	Person   string
	TimeSlot string
	Day      string
}

// View is the derived person × time slot × day matrix for a list of entries.
// Rows and columns come from the fixed enumerations in model; entries whose
// day or time slot fall outside them are kept out of every cell.
type View struct {
	Persons   []string
	TimeSlots []string
	Days      []string

	cells map[CellKey][]*model.ScheduleEntry
	total int
}

// Build partitions entries into cells. Each renderable entry lands in exactly
// one cell and cells keep the order of entries.
func Build(entries []*model.ScheduleEntry) View {
	v := View{
		TimeSlots: model.TimeSlots,
		Days:      model.Days,
		cells:     make(map[CellKey][]*model.ScheduleEntry),
		total:     len(entries),
	}

	seen := make(map[string]struct{})
	for _, e := range entries {
		if _, ok := seen[e.Person]; !ok {
			seen[e.Person] = struct{}{}
			v.Persons = append(v.Persons, e.Person)
		}

		if !model.IsDay(e.Day) || !model.IsTimeSlot(e.TimeSlot) {
			continue
		}

		key := CellKey{Person: e.Person, TimeSlot: e.TimeSlot, Day: e.Day}
		v.cells[key] = append(v.cells[key], e)
	}
	slices.Sort(v.Persons)

	return v
}

// Cell returns the entries for one intersection, or nil.
func (v View) Cell(person, timeSlot, day string) []*model.ScheduleEntry {
	return v.cells[CellKey{Person: person, TimeSlot: timeSlot, Day: day}]
}

// Empty reports whether there are no persons to draw rows for.
func (v View) Empty() bool {
	return len(v.Persons) == 0
}

// Total is the number of entries the view was built from, renderable or not.
func (v View) Total() int {
	return v.total
}

// Renderable counts the entries that landed in a cell.
func (v View) Renderable() int {
	n := 0
	for _, bucket := range v.cells {
		n += len(bucket)
	}
	return n
}
