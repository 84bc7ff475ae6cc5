package model

import (
	"time"
)

type ScheduleEntry struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Person    string    `db:"person" json:"person"`
	Context   string    `db:"context" json:"context"`
	Day       string    `db:"day" json:"day"`
	Type      string    `db:"type" json:"type"`
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EntryInput is a new entry as submitted by the form or the API, before the
// store assigns an id and timestamp.
type EntryInput struct {
	Title    string `json:"title"`
	Person   string `json:"person"`
	Context  string `json:"context"`
	Day      string `json:"day"`
	Type     string `json:"type"`
	TimeSlot string `json:"time_slot"`
}

// EntryPatch is a partial update. Nil fields are left unchanged.
type EntryPatch struct {
	Title    *string `json:"title,omitempty"`
	Person   *string `json:"person,omitempty"`
	Context  *string `json:"context,omitempty"`
	Day      *string `json:"day,omitempty"`
	Type     *string `json:"type,omitempty"`
	TimeSlot *string `json:"time_slot,omitempty"`
}

func (p EntryPatch) IsEmpty() bool {
	return p.Title == nil && p.Person == nil && p.Context == nil &&
		p.Day == nil && p.Type == nil && p.TimeSlot == nil
}

// Apply copies the non-nil patch fields onto e.
func (p EntryPatch) Apply(e *ScheduleEntry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Person != nil {
		e.Person = *p.Person
	}
	if p.Context != nil {
		e.Context = *p.Context
	}
	if p.Day != nil {
		e.Day = *p.Day
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.TimeSlot != nil {
		e.TimeSlot = *p.TimeSlot
	}
}

func (e *ScheduleEntry) Input() EntryInput {
	return EntryInput{
		Title:    e.Title,
		Person:   e.Person,
		Context:  e.Context,
		Day:      e.Day,
		Type:     e.Type,
		TimeSlot: e.TimeSlot,
	}
}
