package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/scheduletable/internal/model"
)

func validInput() model.EntryInput {
	return model.EntryInput{
		Title:    "Standup",
		Person:   "Louis",
		Context:  "Training",
		Day:      "2",
		Type:     "Meeting",
		TimeSlot: "AM",
	}
}

func TestValidateEntry(t *testing.T) {
	require.NoError(t, ValidateEntry(validInput()))

	tests := []struct {
		name    string
		mutate  func(*model.EntryInput)
		field   string
		missing bool
	}{
		{"empty person", func(in *model.EntryInput) { in.Person = "" }, "person", true},
		{"blank title", func(in *model.EntryInput) { in.Title = "   " }, "title", true},
		{"empty time slot", func(in *model.EntryInput) { in.TimeSlot = "" }, "time_slot", true},
		{"unknown day", func(in *model.EntryInput) { in.Day = "6" }, "day", false},
		{"unknown type", func(in *model.EntryInput) { in.Type = "Call" }, "type", false},
		{"unknown person", func(in *model.EntryInput) { in.Person = "Nobody" }, "person", false},
		{"title too long", func(in *model.EntryInput) { in.Title = strings.Repeat("x", maxTitleLength+1) }, "title", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := ValidateEntry(in)
			var verr *Error
			require.True(t, errors.As(err, &verr), "expected *Error, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.missing, verr.Missing())
		})
	}
}

func TestValidateEntryReportsMissingBeforeInvalid(t *testing.T) {
	in := validInput()
	in.Day = "Sunday"
	in.Context = ""

	var verr *Error
	require.ErrorAs(t, ValidateEntry(in), &verr)
	assert.Equal(t, "context", verr.Field)
	assert.True(t, verr.Missing())
}

func TestValidatePatch(t *testing.T) {
	title := "Retro"
	empty := ""
	badSlot := "Noon"

	assert.NoError(t, ValidatePatch(model.EntryPatch{Title: &title}))

	var verr *Error
	require.ErrorAs(t, ValidatePatch(model.EntryPatch{}), &verr)
	assert.Equal(t, "body", verr.Field)

	require.ErrorAs(t, ValidatePatch(model.EntryPatch{Title: &empty}), &verr)
	assert.Equal(t, "title", verr.Field)
	assert.True(t, verr.Missing())

	require.ErrorAs(t, ValidatePatch(model.EntryPatch{TimeSlot: &badSlot}), &verr)
	assert.Equal(t, "time_slot", verr.Field)
}
