package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/scheduletable/internal/grid"
	"github.com/templui/scheduletable/internal/model"
	"github.com/templui/scheduletable/internal/service"
	"github.com/templui/scheduletable/internal/ui"
	"github.com/templui/scheduletable/internal/ui/components/alert"
	"github.com/templui/scheduletable/internal/ui/pages"
	"github.com/templui/scheduletable/internal/validation"
)

const (
	msgRequiredFields = "Please fill all required fields"
	msgDeleteFailed   = "Failed to delete entry"
)

// ScheduleHandler serves the HTMX page, the grid fragment and the form and
// cell actions.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	snapshotService *service.SnapshotService
}

func NewScheduleHandler(scheduleService *service.ScheduleService, snapshotService *service.SnapshotService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		snapshotService: snapshotService,
	}
}

func (h *ScheduleHandler) gridProps(entries []*model.ScheduleEntry) pages.GridProps {
	return pages.GridProps{
		View:             grid.Build(entries),
		SnapshotsEnabled: h.snapshotService.Enabled(),
	}
}

func (h *ScheduleHandler) SchedulePage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scheduleService.Snapshot()
	if err != nil {
		slog.Error("failed to load schedule", "error", err)
		http.Error(w, "Failed to load schedule", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Schedule(pages.ScheduleProps{
		Grid: h.gridProps(entries),
	}))
}

// Grid re-renders the grid from a fresh read. A failed read answers 500 so
// htmx keeps the grid already on screen.
func (h *ScheduleHandler) Grid(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scheduleService.Snapshot()
	if err != nil {
		slog.Error("failed to refresh grid", "error", err)
		http.Error(w, "Failed to load schedule", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Grid(h.gridProps(entries)))
}

func (h *ScheduleHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	in := model.EntryInput{
		Title:    r.FormValue("title"),
		Person:   r.FormValue("person"),
		Context:  r.FormValue("context"),
		Day:      r.FormValue("day"),
		Type:     r.FormValue("type"),
		TimeSlot: r.FormValue("time_slot"),
	}

	_, err := h.scheduleService.Create(in)

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		msg := vErr.Error()
		if vErr.Missing() {
			msg = msgRequiredFields
		}
		ui.Render(w, r, pages.EntryForm(pages.FormState{Values: in, Error: msg}))
		return
	}

	if err != nil {
		slog.Error("failed to create entry", "error", err)
		ui.Render(w, r, pages.EntryForm(pages.FormState{Values: in, Error: err.Error()}))
		return
	}

	// Refresh the submitting page's grid right away, live sessions follow
	// through the broker
	w.Header().Set("HX-Trigger", pages.EntryAddedEvent)
	ui.Render(w, r, pages.EntryForm(pages.FormState{Success: true}))
}

func (h *ScheduleHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.scheduleService.Delete(id)
	if err != nil {
		slog.Error("failed to delete entry", "error", err, "entry_id", id)
		ui.RenderOOB(w, r, alert.Alert(alert.Props{
			Message: msgDeleteFailed,
			Variant: alert.VariantError,
		}), "beforeend:#"+pages.AlertsID)
		return
	}

	w.Header().Set("HX-Trigger", pages.EntryAddedEvent)
	w.WriteHeader(http.StatusOK)
}

func (h *ScheduleHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	ui.Render(w, r, pages.NotFound())
}
