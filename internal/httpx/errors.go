package httpx

import (
	"errors"
	"net/http"

	"marketing-dashboard/backend/internal/db"
)

// StoreError maps repository write/query failures to an HTTP error response.
// db.ErrUnavailable means the store could not be reached (503); anything else
// is an internal failure the caller cannot act on (500).
func StoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrUnavailable) {
		Error(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	Error(w, http.StatusInternalServerError, "internal error")
}
