package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fittrack/internal/services"
)

type errorBody struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeError maps service errors onto API status codes. Anything unclassified is logged
// and reported generically.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: verr.Message, Errors: verr.Fields})
	case errors.Is(err, services.ErrNotFound):
		writeDetail(w, http.StatusNotFound, notFound)
	case errors.Is(err, services.ErrForbidden):
		writeDetail(w, http.StatusForbidden, "Forbidden")
	default:
		logger.Error("request failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pageError is the HTML counterpart of writeError.
func pageError(w http.ResponseWriter, logger *zap.Logger, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Message, http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, notFound, http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Not authorized", http.StatusForbidden)
	default:
		logger.Error("request failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return &services.ValidationError{Message: "Invalid JSON body: " + err.Error()}
	}
	return nil
}

// pathInt reads a numeric chi URL parameter.
func pathInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
