package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/scheduletable/internal/config"
	"github.com/templui/scheduletable/internal/ctxkeys"
	"github.com/templui/scheduletable/internal/grid"
	"github.com/templui/scheduletable/internal/model"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestSchedule_Document(t *testing.T) {
	ctx := templ.WithNonce(context.Background(), "n0nce")
	ctx = ctxkeys.WithCSRFToken(ctx, "tok123")
	ctx = ctxkeys.WithConfig(ctx, &config.Config{AppName: "Team Week"})

	html := renderString(t, ctx, Schedule(ScheduleProps{Grid: GridProps{View: grid.Build(nil)}}))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Team Week</title>")
	assert.Equal(t, 4, strings.Count(html, `nonce="n0nce"`), "every script carries the request nonce")
	assert.Contains(t, html, "tok123", "the CSRF token is handed to htmx")
	assert.Contains(t, html, `id="alerts"`)
	assert.Contains(t, html, `id="entry-form"`)
	assert.Less(t, strings.Index(html, `ws-connect="/grid/live"`), strings.Index(html, `id="schedule-grid"`), "the grid lives inside the ws wrapper")
}

func TestNotFound(t *testing.T) {
	html := renderString(t, context.Background(), NotFound())

	assert.Contains(t, html, "<title>Not found</title>")
	assert.Contains(t, html, "Page not found")
	assert.Contains(t, html, `href="/"`)
}

func TestExport_ReadOnlyWithoutAppScripts(t *testing.T) {
	entries := []*model.ScheduleEntry{
		{ID: "1", Title: "Standup", Person: "Louis", Context: "Training", Day: "2", Type: "Meeting", TimeSlot: "AM"},
	}
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	html := renderString(t, context.Background(), Export(ExportProps{View: grid.Build(entries), GeneratedAt: at}))

	assert.Contains(t, html, `<time datetime="2026-03-02T09:30:00Z">2026-03-02 09:30 UTC</time>`)
	assert.Contains(t, html, "1 entries")
	assert.Contains(t, html, "Standup")
	assert.NotContains(t, html, "htmx.org")
	assert.NotContains(t, html, "hx-delete")
	assert.NotContains(t, html, "hx-get")
}
