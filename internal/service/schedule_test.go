package service

import (
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/scheduletable/internal/db"
	"github.com/templui/scheduletable/internal/feed"
	"github.com/templui/scheduletable/internal/model"
	"github.com/templui/scheduletable/internal/repository"
	"github.com/templui/scheduletable/internal/validation"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []feed.Event
}

func (p *recordingPublisher) Publish(e feed.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) ops() []feed.Op {
	p.mu.Lock()
	defer p.mu.Unlock()
	ops := make([]feed.Op, 0, len(p.events))
	for _, e := range p.events {
		ops = append(ops, e.Op)
	}
	return ops
}

func newTestService(t *testing.T) (*ScheduleService, *recordingPublisher) {
	t.Helper()

	database, err := db.Init(db.DriverSQLite, filepath.Join(t.TempDir(), "schedule.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, db.DriverSQLite))

	pub := &recordingPublisher{}
	return NewScheduleService(repository.NewScheduleEntryRepository(database), pub, nil), pub
}

func standup() model.EntryInput {
	return model.EntryInput{
		Title:    "Standup",
		Person:   "Louis",
		Context:  "Training",
		Day:      "2",
		Type:     "Meeting",
		TimeSlot: "AM",
	}
}

func TestScheduleService_CreateListDelete(t *testing.T) {
	svc, pub := newTestService(t)

	created, err := svc.Create(standup())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	entries, err := svc.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].ID)
	assert.Equal(t, standup(), entries[0].Input())

	require.NoError(t, svc.Delete(created.ID))

	entries, err = svc.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, []feed.Op{feed.OpInsert, feed.OpDelete}, pub.ops())
}

func TestScheduleService_CreateRejectsMissingFieldsWithoutStoreCall(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	pub := &recordingPublisher{}
	svc := NewScheduleService(repository.NewScheduleEntryRepository(sqlx.NewDb(mockDB, "sqlmock")), pub, nil)

	in := standup()
	in.Person = ""

	_, err = svc.Create(in)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "person", verr.Field)

	// no expectations were registered, so any query would have failed the mock
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, pub.ops())
}

func TestScheduleService_StoreErrors(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	pub := &recordingPublisher{}
	svc := NewScheduleService(repository.NewScheduleEntryRepository(sqlx.NewDb(mockDB, "sqlmock")), pub, nil)
	boom := errors.New("permission denied for table schedule_entries")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_entries")).WillReturnError(boom)
	_, err = svc.Create(standup())

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "create", serr.Op)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "permission denied")

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_entries")).WillReturnError(boom)
	_, err = svc.List()
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "list", serr.Op)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_entries")).
		WithArgs("abc").
		WillReturnError(boom)
	err = svc.Delete("abc")
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "delete", serr.Op)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, pub.ops(), "failed mutations publish nothing")
}

func TestScheduleService_DeleteMissingIDSucceeds(t *testing.T) {
	svc, pub := newTestService(t)

	created, err := svc.Create(standup())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(created.ID))

	// a second client deleting its stale copy of the same entry
	require.NoError(t, svc.Delete(created.ID))
	require.NoError(t, svc.Delete("never-existed"))

	assert.Equal(t, []feed.Op{feed.OpInsert, feed.OpDelete, feed.OpDelete, feed.OpDelete}, pub.ops())
}

func TestScheduleService_Update(t *testing.T) {
	svc, pub := newTestService(t)

	created, err := svc.Create(standup())
	require.NoError(t, err)

	title := "Sprint review"
	slot := "PM"
	updated, err := svc.Update(created.ID, model.EntryPatch{Title: &title, TimeSlot: &slot})
	require.NoError(t, err)
	assert.Equal(t, "Sprint review", updated.Title)
	assert.Equal(t, "PM", updated.TimeSlot)
	assert.Equal(t, "Louis", updated.Person, "fields outside the patch are kept")

	stored, err := svc.ByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Title, stored.Title)

	_, err = svc.Update("missing", model.EntryPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	empty := ""
	_, err = svc.Update(created.ID, model.EntryPatch{Person: &empty})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)

	assert.Equal(t, []feed.Op{feed.OpInsert, feed.OpUpdate}, pub.ops())
}

func TestScheduleService_SnapshotKeepsInsertionOrder(t *testing.T) {
	svc, _ := newTestService(t)

	// a frozen clock still yields strictly increasing timestamps
	frozen := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	first := standup()
	second := standup()
	second.Title = "Planning"

	a, err := svc.Create(first)
	require.NoError(t, err)
	b, err := svc.Create(second)
	require.NoError(t, err)
	assert.True(t, b.CreatedAt.After(a.CreatedAt))

	snapshot, err := svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, []string{"Standup", "Planning"}, []string{snapshot[0].Title, snapshot[1].Title})

	newest, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, "Planning", newest[0].Title)
}

func genInput() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.OneConstOf("Nilson", "Louis", "Jaden"),
		gen.OneConstOf("Training", "Security", "Reporting"),
		gen.OneConstOf("1", "2", "3", "4", "5", "TBD"),
		gen.OneConstOf("Meeting", "Task", "Reminder", "KPI"),
		gen.OneConstOf("Reminder", "AM", "PM"),
	).Map(func(v []interface{}) model.EntryInput {
		return model.EntryInput{
			Title:    v[0].(string),
			Person:   v[1].(string),
			Context:  v[2].(string),
			Day:      v[3].(string),
			Type:     v[4].(string),
			TimeSlot: v[5].(string),
		}
	})
}

func TestScheduleService_Properties(t *testing.T) {
	svc, _ := newTestService(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("create then list contains the entry with a new id", prop.ForAll(
		func(in model.EntryInput) bool {
			before, err := svc.List()
			if err != nil {
				return false
			}

			created, err := svc.Create(in)
			if err != nil {
				return false
			}

			after, err := svc.List()
			if err != nil {
				return false
			}

			for _, e := range before {
				if e.ID == created.ID {
					return false
				}
			}
			for _, e := range after {
				if e.ID == created.ID && e.Input() == in {
					return true
				}
			}
			return false
		},
		genInput(),
	))

	properties.Property("delete then list never contains the id", prop.ForAll(
		func(in model.EntryInput) bool {
			created, err := svc.Create(in)
			if err != nil {
				return false
			}
			if svc.Delete(created.ID) != nil {
				return false
			}

			after, err := svc.List()
			if err != nil {
				return false
			}
			for _, e := range after {
				if e.ID == created.ID {
					return false
				}
			}
			return true
		},
		genInput(),
	))

	properties.TestingRun(t)
}
