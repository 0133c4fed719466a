package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"campusbank.org/internal/audit"
	"campusbank.org/internal/bank"
	"campusbank.org/internal/helpdesk"
)

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "campusbank-api",
		"version": a.version,
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "campusbank-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := audit.RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleBankError maps core sentinels onto HTTP status codes.
func handleBankError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount), errors.Is(err, bank.ErrInvalidPIN),
		errors.Is(err, helpdesk.ErrInvalidCategory):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, bank.ErrAuthFailed):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, bank.ErrCardLocked):
		writeError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, bank.ErrNotFound), errors.Is(err, bank.ErrUnknownConfirmation):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, bank.ErrInvalidRecipient):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, bank.ErrInsufficientFunds), errors.Is(err, bank.ErrCancelled):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (a *API) audit(r *http.Request, event string, fields map[string]any) {
	_ = audit.LogEvent(r.Context(), event, fields)
}
