package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/web-mahadihasan/TasksZen-Server/logging"
	"github.com/web-mahadihasan/TasksZen-Server/models"
)

type UserRegistrar interface {
	RegisterUser(ctx context.Context, user models.User) (*models.User, bool, error)
}

type UserHandler struct {
	service UserRegistrar
}

func NewUserHandler(service UserRegistrar) *UserHandler {
	return &UserHandler{service: service}
}

type registerUserRequest struct {
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	PhotoURL  string    `json:"photoUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Register creates the user, or returns the existing record when the email is
// already registered. Duplicate registration is not an error.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, created, err := h.service.RegisterUser(r.Context(), models.User{
		Name:      req.Name,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: USER_REGISTER_FAILED, Description: Failed to register user %s: %v", req.Email, err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, user)
}
