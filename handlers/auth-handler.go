package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/web-mahadihasan/TasksZen-Server/logging"
	"github.com/web-mahadihasan/TasksZen-Server/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type tokenRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoUrl"`
}

// IssueToken signs a bearer token for the given identity claim. Identities are
// trusted as submitted; there is no password step.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := utils.GenerateToken(req.Name, req.Email)
	if err != nil {
		logging.Logger.Errorf("Event ID: TOKEN_ISSUE_FAILED, Description: Failed to issue token for %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
