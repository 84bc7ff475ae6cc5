package grid

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/scheduletable/internal/model"
)

func entry(id, title, person, slot, day string) *model.ScheduleEntry {
	return &model.ScheduleEntry{
		ID:       id,
		Title:    title,
		Person:   person,
		Context:  "Training",
		Day:      day,
		Type:     "Meeting",
		TimeSlot: slot,
	}
}

func TestBuild_Axes(t *testing.T) {
	v := Build([]*model.ScheduleEntry{
		entry("1", "a", "Nilson", "AM", "1"),
		entry("2", "b", "Jaden", "PM", "TBD"),
		entry("3", "c", "Louis", "Reminder", "3"),
		entry("4", "d", "Jaden", "AM", "2"),
	})

	assert.Equal(t, []string{"Jaden", "Louis", "Nilson"}, v.Persons)
	assert.Equal(t, []string{"Reminder", "AM", "PM"}, v.TimeSlots)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "TBD"}, v.Days)
	assert.False(t, v.Empty())
}

func TestBuild_Empty(t *testing.T) {
	v := Build(nil)
	assert.True(t, v.Empty())
	assert.Nil(t, v.Cell("Louis", "AM", "2"))
}

func TestBuild_StandupScenario(t *testing.T) {
	v := Build([]*model.ScheduleEntry{entry("1", "Standup", "Louis", "AM", "2")})

	cell := v.Cell("Louis", "AM", "2")
	require.Len(t, cell, 1)
	assert.Equal(t, "Standup", cell[0].Title)
	assert.Empty(t, v.Cell("Louis", "PM", "2"))
	assert.Empty(t, v.Cell("Louis", "AM", "3"))

	assert.Empty(t, Build(nil).Cell("Louis", "AM", "2"), "after delete the cell is empty")
}

func TestBuild_SameCellKeepsInsertionOrder(t *testing.T) {
	v := Build([]*model.ScheduleEntry{
		entry("1", "First", "Louis", "AM", "2"),
		entry("2", "Other", "Nilson", "AM", "2"),
		entry("3", "Second", "Louis", "AM", "2"),
	})

	cell := v.Cell("Louis", "AM", "2")
	require.Len(t, cell, 2)
	assert.Equal(t, "First", cell[0].Title)
	assert.Equal(t, "Second", cell[1].Title)
}

func TestBuild_OutOfRangeEntriesAreNotRendered(t *testing.T) {
	v := Build([]*model.ScheduleEntry{
		entry("1", "weekend", "Louis", "AM", "6"),
		entry("2", "evening", "Louis", "Evening", "1"),
	})

	assert.Equal(t, []string{"Louis"}, v.Persons, "persons still come from every entry")
	assert.Equal(t, 0, v.Renderable())
	assert.Equal(t, 2, v.Total())
}

var (
	genPersons = []string{"Nilson", "Louis", "Jaden", "Guest"}
	genSlots   = []string{"Reminder", "AM", "PM", "Evening"}
	genDays    = []string{"1", "2", "3", "4", "5", "TBD", "7"}
)

// entriesFromSeeds maps generated integers onto entries, including a share
// with days or slots outside the fixed enumerations.
func entriesFromSeeds(seeds []int) []*model.ScheduleEntry {
	entries := make([]*model.ScheduleEntry, 0, len(seeds))
	for i, s := range seeds {
		entries = append(entries, entry(
			fmt.Sprintf("e%d", i),
			fmt.Sprintf("t%d", s),
			genPersons[s%len(genPersons)],
			genSlots[(s/len(genPersons))%len(genSlots)],
			genDays[(s/(len(genPersons)*len(genSlots)))%len(genDays)],
		))
	}
	return entries
}

func TestBuild_PartitionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every renderable entry is in exactly one cell and the union equals the filtered list", prop.ForAll(
		func(seeds []int) bool {
			entries := entriesFromSeeds(seeds)
			v := Build(entries)

			counts := make(map[string]int)
			for _, p := range v.Persons {
				for _, slot := range v.TimeSlots {
					for _, day := range v.Days {
						for _, e := range v.Cell(p, slot, day) {
							if e.Person != p || e.TimeSlot != slot || e.Day != day {
								return false
							}
							counts[e.ID]++
						}
					}
				}
			}

			renderable := 0
			for _, e := range entries {
				inRange := model.IsDay(e.Day) && model.IsTimeSlot(e.TimeSlot)
				if inRange {
					renderable++
					if counts[e.ID] != 1 {
						return false
					}
				} else if counts[e.ID] != 0 {
					return false
				}
			}

			return len(counts) == renderable && v.Renderable() == renderable
		},
		gen.SliceOf(gen.IntRange(0, 10_000)),
	))

	properties.Property("persons are distinct and sorted", prop.ForAll(
		func(seeds []int) bool {
			v := Build(entriesFromSeeds(seeds))
			for i := 1; i < len(v.Persons); i++ {
				if v.Persons[i-1] >= v.Persons[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 10_000)),
	))

	properties.TestingRun(t)
}
