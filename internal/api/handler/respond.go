// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"paperbook/internal/util"
)

// DefaultTimeout is the per-request deadline applied by the router.
const DefaultTimeout = 60 * time.Second

// respondWithJSON marshals payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		util.GetLogger().Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors onto HTTP statuses.
func respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput), util.IsError(err, util.ErrInvalidParlay):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrWalletNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrInsufficientBalance):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Insufficient balance"
	case util.IsError(err, util.ErrAlreadySettled):
		statusCode = http.StatusConflict
		message = "Already settled"
	case util.IsError(err, util.ErrBetLimitExceeded):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()
	default:
		util.GetLogger().Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// userIDParam parses the {userID} route parameter.
func userIDParam(r *http.Request) (int64, error) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, util.ErrInvalidInput
	}
	return userID, nil
}

// paginationParams parses limit/offset query parameters with defaults.
func paginationParams(r *http.Request, defaultLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
