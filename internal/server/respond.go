package server

import (
	"encoding/json"
	"net/http"

	"user-dashboard/backend/internal/apperrors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeData writes {"data": v} with status 200.
func writeData(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

// writeError maps err through the error taxonomy and writes
// {"error": {"code","message"}}.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": errorBody{Code: apperrors.Code(err), Message: err.Error()},
	})
}
