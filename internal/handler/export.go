package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/scheduletable/internal/grid"
	"github.com/templui/scheduletable/internal/service"
	"github.com/templui/scheduletable/internal/ui"
	"github.com/templui/scheduletable/internal/ui/components/alert"
	"github.com/templui/scheduletable/internal/ui/pages"
)

// ExportHandler produces standalone HTML copies of the current schedule.
type ExportHandler struct {
	scheduleService *service.ScheduleService
	snapshotService *service.SnapshotService
	now             func() time.Time
}

func NewExportHandler(scheduleService *service.ScheduleService, snapshotService *service.SnapshotService) *ExportHandler {
	return &ExportHandler{
		scheduleService: scheduleService,
		snapshotService: snapshotService,
		now:             time.Now,
	}
}

func (h *ExportHandler) exportPage() (pages.ExportProps, error) {
	entries, err := h.scheduleService.Snapshot()
	if err != nil {
		return pages.ExportProps{}, err
	}
	return pages.ExportProps{View: grid.Build(entries), GeneratedAt: h.now()}, nil
}

// Download serves the snapshot as an HTML file attachment.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	props, err := h.exportPage()
	if err != nil {
		slog.Error("failed to export schedule", "error", err)
		http.Error(w, "Failed to export schedule", http.StatusInternalServerError)
		return
	}

	filename := "schedule-" + props.GeneratedAt.UTC().Format("20060102-150405") + ".html"
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	ui.Render(w, r, pages.Export(props))
}

// Store uploads the snapshot to object storage and answers with an
// out-of-band alert linking to it.
func (h *ExportHandler) Store(w http.ResponseWriter, r *http.Request) {
	if !h.snapshotService.Enabled() {
		http.Error(w, "Snapshot storage is not configured", http.StatusServiceUnavailable)
		return
	}

	props, err := h.exportPage()
	if err != nil {
		slog.Error("failed to export schedule", "error", err)
		h.renderAlert(w, r, alert.Props{Message: "Failed to save snapshot", Variant: alert.VariantError})
		return
	}

	html, err := ui.Bytes(r.Context(), pages.Export(props))
	if err != nil {
		slog.Error("failed to render snapshot", "error", err)
		h.renderAlert(w, r, alert.Props{Message: "Failed to save snapshot", Variant: alert.VariantError})
		return
	}

	key, url, err := h.snapshotService.Save(r.Context(), html)
	if errors.Is(err, service.ErrSnapshotsDisabled) {
		http.Error(w, "Snapshot storage is not configured", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		slog.Error("failed to store snapshot", "error", err)
		h.renderAlert(w, r, alert.Props{Message: "Failed to save snapshot", Variant: alert.VariantError})
		return
	}

	if r.Header.Get("HX-Request") != "true" {
		writeJSON(w, http.StatusOK, map[string]string{"key": key, "url": url})
		return
	}

	h.renderAlert(w, r, alert.Props{
		Message:   "Snapshot saved.",
		Href:      url,
		Variant:   alert.VariantSuccess,
		Transient: url == "",
	})
}

func (h *ExportHandler) renderAlert(w http.ResponseWriter, r *http.Request, p alert.Props) {
	ui.RenderOOB(w, r, alert.Alert(p), "beforeend:#"+pages.AlertsID)
}
