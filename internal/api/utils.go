package api

import (
	"encoding/json"
	"net/http"

	"github.com/VanGog06-SoftUni/ToDAI/internal/validation"
)

// errorBody is the wire shape for every failed request.
type errorBody struct {
	Error       string                 `json:"error"`
	FieldErrors validation.FieldErrors `json:"fieldErrors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeFieldErrors(w http.ResponseWriter, errs validation.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "Validation failed", FieldErrors: errs})
}
