package handlers

import (
	"encoding/json"
	"net/http"

	"reviewsBack/internal/models"
)

// apiResponse is the uniform envelope every endpoint answers with.
type apiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, apiResponse{Success: true, Message: message, Data: data})
}

// WriteError sends a failure envelope. Exported because the cmd middleware
// (auth, rate limiting, panic recovery) answers with the same shape.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Message: message})
}

func writeValidationError(w http.ResponseWriter, errs []models.FieldError) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Success: false,
		Message: "Validation error",
		Errors:  errs,
	})
}
