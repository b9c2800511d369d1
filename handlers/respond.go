package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/web-mahadihasan/TasksZen-Server/services"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// statusForError maps service errors onto the error classes the API exposes:
// 400 validation, 404 not-found, 500 everything else.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidLane), errors.Is(err, services.ErrInvalidTaskID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
