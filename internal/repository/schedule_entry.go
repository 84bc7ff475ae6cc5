package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/scheduletable/internal/model"
)

const (
	EntryOrderNewest = "newest"
	EntryOrderOldest = "oldest"
)

var (
	ErrEntryNotFound = errors.New("schedule entry not found")
)

type ScheduleEntryRepository interface {
	Create(entry *model.ScheduleEntry) error
	ByID(id string) (*model.ScheduleEntry, error)
	Entries(order string) ([]*model.ScheduleEntry, error)
	Update(entry *model.ScheduleEntry) error
	Delete(id string) error
}

type scheduleEntryRepository struct {
	db *sqlx.DB
}

func NewScheduleEntryRepository(db *sqlx.DB) ScheduleEntryRepository {
	return &scheduleEntryRepository{db: db}
}

func (r *scheduleEntryRepository) Create(entry *model.ScheduleEntry) error {
	query := `INSERT INTO schedule_entries (id, title, person, context, day, type, time_slot, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.Title,
		entry.Person,
		entry.Context,
		entry.Day,
		entry.Type,
		entry.TimeSlot,
		entry.CreatedAt,
	)

	return err
}

func (r *scheduleEntryRepository) ByID(id string) (*model.ScheduleEntry, error) {
	entry := &model.ScheduleEntry{}
	query := `SELECT id, title, person, context, day, type, time_slot, created_at
	          FROM schedule_entries WHERE id = $1`

	err := r.db.Get(entry, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *scheduleEntryRepository) Entries(order string) ([]*model.ScheduleEntry, error) {
	entries := []*model.ScheduleEntry{}

	var orderBy string
	switch order {
	case EntryOrderOldest:
		orderBy = "ORDER BY created_at ASC, id ASC"
	default: // EntryOrderNewest or empty
		orderBy = "ORDER BY created_at DESC, id DESC"
	}

	query := `SELECT id, title, person, context, day, type, time_slot, created_at
	          FROM schedule_entries ` + orderBy

	err := r.db.Select(&entries, query)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *scheduleEntryRepository) Update(entry *model.ScheduleEntry) error {
	query := `UPDATE schedule_entries
	          SET title = $1, person = $2, context = $3, day = $4, type = $5, time_slot = $6
	          WHERE id = $7`

	result, err := r.db.Exec(query,
		entry.Title,
		entry.Person,
		entry.Context,
		entry.Day,
		entry.Type,
		entry.TimeSlot,
		entry.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Delete removes the entry with the given id. Deleting an id that is
// already gone succeeds.
func (r *scheduleEntryRepository) Delete(id string) error {
	query := `DELETE FROM schedule_entries WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}
