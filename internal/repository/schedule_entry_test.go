package repository

import (
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/scheduletable/internal/db"
	"github.com/templui/scheduletable/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init(db.DriverSQLite, filepath.Join(t.TempDir(), "schedule.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, db.DriverSQLite))
	return database
}

func newEntry(title string, at time.Time) *model.ScheduleEntry {
	return &model.ScheduleEntry{
		ID:        uuid.New().String(),
		Title:     title,
		Person:    "Louis",
		Context:   "Training",
		Day:       "2",
		Type:      "Meeting",
		TimeSlot:  "AM",
		CreatedAt: at,
	}
}

func TestScheduleEntryRepository_RoundTrip(t *testing.T) {
	repo := NewScheduleEntryRepository(newTestDB(t))
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	first := newEntry("Standup", base)
	second := newEntry("Retro", base.Add(time.Minute))
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	got, err := repo.ByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "Louis", got.Person)
	assert.True(t, base.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)

	newest, err := repo.Entries(EntryOrderNewest)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, second.ID, newest[0].ID)

	oldest, err := repo.Entries(EntryOrderOldest)
	require.NoError(t, err)
	require.Len(t, oldest, 2)
	assert.Equal(t, first.ID, oldest[0].ID)

	got.Title = "Daily standup"
	got.TimeSlot = "PM"
	require.NoError(t, repo.Update(got))

	updated, err := repo.ByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Daily standup", updated.Title)
	assert.Equal(t, "PM", updated.TimeSlot)

	require.NoError(t, repo.Delete(first.ID))
	_, err = repo.ByID(first.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	remaining, err := repo.Entries(EntryOrderNewest)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)
}

func TestScheduleEntryRepository_EmptyListIsNotNil(t *testing.T) {
	repo := NewScheduleEntryRepository(newTestDB(t))

	entries, err := repo.Entries(EntryOrderNewest)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestScheduleEntryRepository_MissingRows(t *testing.T) {
	repo := NewScheduleEntryRepository(newTestDB(t))

	assert.NoError(t, repo.Delete("missing"), "deleting an absent id succeeds")
	assert.ErrorIs(t, repo.Update(newEntry("ghost", time.Now())), ErrEntryNotFound)

	_, err := repo.ByID("missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func newMockRepo(t *testing.T) (ScheduleEntryRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewScheduleEntryRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestScheduleEntryRepository_StoreFailures(t *testing.T) {
	boom := errors.New("connection reset by peer")

	t.Run("list", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_entries ORDER BY created_at DESC")).
			WillReturnError(boom)

		_, err := repo.Entries(EntryOrderNewest)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_entries")).
			WillReturnError(boom)

		assert.ErrorIs(t, repo.Create(newEntry("Standup", time.Now())), boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_entries WHERE id = $1")).
			WithArgs("abc").
			WillReturnError(boom)

		assert.ErrorIs(t, repo.Delete("abc"), boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs("abc").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "person", "context", "day", "type", "time_slot", "created_at"}).
				AddRow("abc", "Standup", "Louis", "Training", "2", "Meeting", "AM", time.Now()))

		entry, err := repo.ByID("abc")
		require.NoError(t, err)
		assert.Equal(t, "Standup", entry.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
