package pages

import (
	"github.com/templui/scheduletable/internal/model"
)

const (
	FormID         = "entry-form"
	SuccessMessage = "Entry added successfully!"
)

// FormState is what the entry form shows after a submission.
type FormState struct {
	Values  model.EntryInput
	Error   string
	Success bool
}

type selectField struct {
	name        string
	label       string
	placeholder string
	options     []string
	value       string
}

func selectFields(v model.EntryInput) []selectField {
	return []selectField{
		{name: "person", label: "Person", placeholder: "Select Person", options: model.Persons, value: v.Person},
		{name: "context", label: "Context", placeholder: "Select Context", options: model.Contexts, value: v.Context},
		{name: "day", label: "Day", placeholder: "Select Day", options: model.Days, value: v.Day},
		{name: "type", label: "Type", placeholder: "Select Type", options: model.Types, value: v.Type},
		{name: "time_slot", label: "Time Slot", placeholder: "Select Time Slot", options: model.TimeSlots, value: v.TimeSlot},
	}
}
