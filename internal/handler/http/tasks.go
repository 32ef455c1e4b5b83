package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Create(r.Context(), session.UserID, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusCreated)
}

// listTasks supports ?completed=, ?sortBy=<field>:<asc|desc>, ?limit= and ?skip=.
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	query := r.URL.Query()
	params := models.TaskListParams{
		Completed: query.Get(validators.ParamCompleted),
		SortBy:    query.Get(validators.ParamSortBy),
		Limit:     query.Get(validators.ParamLimit),
		Skip:      query.Get(validators.ParamSkip),
	}

	tasks, err := h.services.TaskService.List(r.Context(), session.UserID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	taskID, err := idFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Get(r.Context(), session.UserID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	taskID, err := idFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Update(r.Context(), session.UserID, taskID, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	taskID, err := idFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Delete(r.Context(), session.UserID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}
