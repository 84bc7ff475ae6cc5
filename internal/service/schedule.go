package service

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/templui/scheduletable/internal/feed"
	"github.com/templui/scheduletable/internal/metrics"
	"github.com/templui/scheduletable/internal/model"
	"github.com/templui/scheduletable/internal/repository"
	"github.com/templui/scheduletable/internal/validation"
)

const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// ScheduleService is the data access layer for schedule entries. Every
// successful mutation publishes one change event.
type ScheduleService struct {
	repo      repository.ScheduleEntryRepository
	publisher feed.Publisher
	metrics   *metrics.Metrics

	mu          sync.Mutex
	now         func() time.Time
	lastCreated time.Time
}

func NewScheduleService(
	repo repository.ScheduleEntryRepository,
	publisher feed.Publisher,
	metrics *metrics.Metrics,
) *ScheduleService {
	return &ScheduleService{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

// List returns all entries, newest first.
func (s *ScheduleService) List() ([]*model.ScheduleEntry, error) {
	return s.entries(repository.EntryOrderNewest)
}

// Snapshot returns all entries in insertion order. The grid reads this so
// that entries sharing a cell keep the order they were added in.
func (s *ScheduleService) Snapshot() ([]*model.ScheduleEntry, error) {
	return s.entries(repository.EntryOrderOldest)
}

func (s *ScheduleService) entries(order string) ([]*model.ScheduleEntry, error) {
	start := time.Now()
	entries, err := s.repo.Entries(order)
	s.metrics.ObserveStore(opList, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, &StoreError{Op: opList, Err: err}
	}
	return entries, nil
}

func (s *ScheduleService) ByID(id string) (*model.ScheduleEntry, error) {
	start := time.Now()
	entry, err := s.repo.ByID(id)
	s.metrics.ObserveStore(opGet, time.Since(start).Seconds(), ignoreNotFound(err))
	if err != nil {
		return nil, storeError(opGet, err)
	}
	return entry, nil
}

// Create validates in and inserts it. Validation failures never reach the
// store.
func (s *ScheduleService) Create(in model.EntryInput) (*model.ScheduleEntry, error) {
	err := validation.ValidateEntry(in)
	if err != nil {
		return nil, err
	}

	entry := &model.ScheduleEntry{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Person:    in.Person,
		Context:   in.Context,
		Day:       in.Day,
		Type:      in.Type,
		TimeSlot:  in.TimeSlot,
		CreatedAt: s.createdAt(),
	}

	start := time.Now()
	err = s.repo.Create(entry)
	s.metrics.ObserveStore(opCreate, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, &StoreError{Op: opCreate, Err: err}
	}

	slog.Info("schedule entry created", "entry_id", entry.ID, "person", entry.Person, "day", entry.Day, "time_slot", entry.TimeSlot)
	s.publish(feed.OpInsert, entry.ID)
	return entry, nil
}

// Update applies a partial update and returns the updated entry.
func (s *ScheduleService) Update(id string, patch model.EntryPatch) (*model.ScheduleEntry, error) {
	err := validation.ValidatePatch(patch)
	if err != nil {
		return nil, err
	}

	entry, err := s.ByID(id)
	if err != nil {
		return nil, err
	}

	patch.Apply(entry)

	start := time.Now()
	err = s.repo.Update(entry)
	s.metrics.ObserveStore(opUpdate, time.Since(start).Seconds(), ignoreNotFound(err))
	if err != nil {
		return nil, storeError(opUpdate, err)
	}

	slog.Info("schedule entry updated", "entry_id", entry.ID)
	s.publish(feed.OpUpdate, entry.ID)
	return entry, nil
}

// Delete removes one entry. A missing id is not an error and still
// publishes, so a stale grid that offered the entry resyncs.
func (s *ScheduleService) Delete(id string) error {
	start := time.Now()
	err := s.repo.Delete(id)
	s.metrics.ObserveStore(opDelete, time.Since(start).Seconds(), err)
	if err != nil {
		return &StoreError{Op: opDelete, Err: err}
	}

	slog.Info("schedule entry deleted", "entry_id", id)
	s.publish(feed.OpDelete, id)
	return nil
}

func (s *ScheduleService) publish(op feed.Op, id string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(feed.Event{Op: op, Table: feed.Table, EntryID: id})
}

// createdAt returns a UTC timestamp strictly after the previous one handed
// out by this service, so insertion order survives coarse clocks.
func (s *ScheduleService) createdAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(s.lastCreated) {
		now = s.lastCreated.Add(time.Microsecond)
	}
	s.lastCreated = now
	return now
}

// storeError passes not-found through unchanged and wraps everything else.
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrEntryNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, repository.ErrEntryNotFound) {
		return nil
	}
	return err
}
