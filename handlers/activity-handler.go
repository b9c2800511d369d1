package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/web-mahadihasan/TasksZen-Server/logging"
	"github.com/web-mahadihasan/TasksZen-Server/models"

	"github.com/gorilla/mux"
)

type ActivityLogger interface {
	Record(ctx context.Context, title, ownerEmail string) (*models.ActivityEvent, error)
	GetRecent(ctx context.Context, ownerEmail string) ([]models.ActivityEvent, error)
}

type ActivityHandler struct {
	service ActivityLogger
}

func NewActivityHandler(service ActivityLogger) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ownerEmail := mux.Vars(r)["ownerEmail"]
	if ownerEmail == "" {
		respondError(w, http.StatusBadRequest, "ownerEmail is required")
		return
	}

	events, err := h.service.GetRecent(r.Context(), ownerEmail)
	if err != nil {
		logging.Logger.Errorf("Event ID: ACTIVITY_LIST_FAILED, Description: Failed to list activities for %s: %v", ownerEmail, err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	if events == nil {
		events = []models.ActivityEvent{}
	}

	respondJSON(w, http.StatusOK, events)
}

type createActivityRequest struct {
	Title      string `json:"title" validate:"required"`
	OwnerEmail string `json:"ownerEmail" validate:"required,email"`
}

func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.service.Record(r.Context(), req.Title, req.OwnerEmail)
	if err != nil {
		logging.Logger.Errorf("Event ID: ACTIVITY_CREATE_FAILED, Description: Failed to record activity for %s: %v", req.OwnerEmail, err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, event)
}
