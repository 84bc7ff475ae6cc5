package validation

import (
	"fmt"
	"strings"

	"github.com/templui/scheduletable/internal/model"
)

const maxTitleLength = 200

// Error is returned when an entry fails validation. It is always raised before
// the store is contacted.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + " " + e.Message
}

// Missing reports whether the error is about an empty required field.
func (e *Error) Missing() bool {
	return e.Message == msgRequired
}

const msgRequired = "is required"

type field struct {
	name    string
	value   string
	allowed func(string) bool
	options []string
}

func entryFields(in model.EntryInput) []field {
	return []field{
		{name: "title", value: in.Title},
		{name: "person", value: in.Person, allowed: model.IsPerson, options: model.Persons},
		{name: "context", value: in.Context, allowed: model.IsContext, options: model.Contexts},
		{name: "day", value: in.Day, allowed: model.IsDay, options: model.Days},
		{name: "type", value: in.Type, allowed: model.IsType, options: model.Types},
		{name: "time_slot", value: in.TimeSlot, allowed: model.IsTimeSlot, options: model.TimeSlots},
	}
}

// ValidateEntry checks that all six fields are present and that enumerated
// fields hold one of their allowed values. Missing fields are reported before
// invalid ones.
func ValidateEntry(in model.EntryInput) error {
	fields := entryFields(in)

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &Error{Field: f.name, Message: msgRequired}
		}
	}

	for _, f := range fields {
		if err := checkField(f); err != nil {
			return err
		}
	}

	return nil
}

// ValidatePatch checks only the fields present in the patch. A patch may not
// blank out a required field.
func ValidatePatch(p model.EntryPatch) error {
	if p.IsEmpty() {
		return &Error{Field: "body", Message: "must contain at least one field"}
	}

	var in model.EntryInput
	present := map[string]bool{}
	set := func(name string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			present[name] = true
		}
	}
	set("title", &in.Title, p.Title)
	set("person", &in.Person, p.Person)
	set("context", &in.Context, p.Context)
	set("day", &in.Day, p.Day)
	set("type", &in.Type, p.Type)
	set("time_slot", &in.TimeSlot, p.TimeSlot)

	for _, f := range entryFields(in) {
		if !present[f.name] {
			continue
		}
		if strings.TrimSpace(f.value) == "" {
			return &Error{Field: f.name, Message: msgRequired}
		}
		if err := checkField(f); err != nil {
			return err
		}
	}

	return nil
}

func checkField(f field) error {
	if f.allowed == nil {
		if len(f.value) > maxTitleLength {
			return &Error{Field: f.name, Message: fmt.Sprintf("is too long (max %d characters)", maxTitleLength)}
		}
		return nil
	}
	if !f.allowed(f.value) {
		return &Error{Field: f.name, Message: "must be one of: " + strings.Join(f.options, ", ")}
	}
	return nil
}
