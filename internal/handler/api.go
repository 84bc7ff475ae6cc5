package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/scheduletable/internal/model"
	"github.com/templui/scheduletable/internal/service"
)

// APIHandler serves the JSON API under /schedule.
type APIHandler struct {
	scheduleService *service.ScheduleService
}

func NewAPIHandler(scheduleService *service.ScheduleService) *APIHandler {
	return &APIHandler{
		scheduleService: scheduleService,
	}
}

func (h *APIHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scheduleService.List()
	if err != nil {
		slog.Error("failed to list entries", "error", err)
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *APIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.EntryInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := h.scheduleService.Create(in)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to create entry", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *APIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entry, err := h.scheduleService.ByID(id)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to get entry", "error", err, "entry_id", id)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *APIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch model.EntryPatch
	err := decodeJSON(w, r, &patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := h.scheduleService.Update(id, patch)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to update entry", "error", err, "entry_id", id)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *APIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.scheduleService.Delete(id)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to delete entry", "error", err, "entry_id", id)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
