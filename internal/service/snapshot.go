package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/scheduletable/internal/storage"
)

var ErrSnapshotsDisabled = errors.New("snapshot storage is not configured")

const snapshotPrefix = "snapshots/"

// SnapshotService stores rendered HTML copies of the schedule.
type SnapshotService struct {
	storage storage.Storage
	now     func() time.Time
}

// NewSnapshotService accepts a nil storage; Save then returns
// ErrSnapshotsDisabled.
func NewSnapshotService(s storage.Storage) *SnapshotService {
	return &SnapshotService{storage: s, now: time.Now}
}

func (s *SnapshotService) Enabled() bool {
	return s.storage != nil
}

// SnapshotKey returns the object key for a snapshot taken at t.
func SnapshotKey(t time.Time) string {
	return snapshotPrefix + "schedule-" + t.UTC().Format("20060102T150405Z") + ".html"
}

// Save uploads html and returns the object key and a link to it.
func (s *SnapshotService) Save(ctx context.Context, html []byte) (string, string, error) {
	if s.storage == nil {
		return "", "", ErrSnapshotsDisabled
	}

	key := SnapshotKey(s.now())
	err := s.storage.Save(ctx, key, "text/html; charset=utf-8", bytes.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to save snapshot: %w", err)
	}

	url, err := s.storage.URL(ctx, key)
	if err != nil {
		slog.Warn("failed to presign snapshot url", "error", err, "key", key)
	}

	slog.Info("schedule snapshot saved", "key", key, "bytes", len(html))
	return key, url, nil
}
