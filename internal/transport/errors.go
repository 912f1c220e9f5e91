package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openoverheid/ori/internal/domain/organisation"
	"github.com/openoverheid/ori/internal/repository"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeServiceError maps domain and repository failures onto the uniform
// error body. Corrupt organisation data is a server-side fault, never blamed
// on the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "The requested resource was not found.")
	case errors.Is(err, repository.ErrSelfReference):
		writeError(w, http.StatusUnprocessableEntity, "A resource must not reference itself.")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		writeError(w, http.StatusUnprocessableEntity, "A referenced resource does not exist.")
	case errors.Is(err, repository.ErrHasDependents):
		writeError(w, http.StatusConflict, "The resource is still referenced by other resources.")
	case errors.Is(err, organisation.ErrUnknownType):
		writeError(w, http.StatusInternalServerError, "Stored organisation data is invalid.")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
