package model

import "slices"

// Allowed values for the enumerated entry fields. The order of each slice is
// the order used by the form options and the grid axes.
var (
	Persons = []string{"Nilson", "Louis", "Jaden"}

	Contexts = []string{
		"SSCPMR testing",
		"EMS Migration",
		"Team Activities",
		"Training",
		"Software Demo",
		"Documentation",
		"Management",
		"Security",
		"Maintenance",
		"Development",
		"Reporting",
		"Certification",
	}

	Days = []string{"1", "2", "3", "4", "5", "TBD"}

	Types = []string{EntryTypeMeeting, EntryTypeTask, EntryTypeReminder, EntryTypeKPI}

	TimeSlots = []string{TimeSlotReminder, TimeSlotAM, TimeSlotPM}
)

const (
	EntryTypeMeeting  = "Meeting"
	EntryTypeTask     = "Task"
	EntryTypeReminder = "Reminder"
	EntryTypeKPI      = "KPI"
)

const (
	TimeSlotReminder = "Reminder"
	TimeSlotAM       = "AM"
	TimeSlotPM       = "PM"
)

func IsPerson(v string) bool   { return slices.Contains(Persons, v) }
func IsContext(v string) bool  { return slices.Contains(Contexts, v) }
func IsDay(v string) bool      { return slices.Contains(Days, v) }
func IsType(v string) bool     { return slices.Contains(Types, v) }
func IsTimeSlot(v string) bool { return slices.Contains(TimeSlots, v) }
