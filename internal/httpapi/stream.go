package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"campusbank.org/internal/auth"
)

// StreamAlerts handles Server-Sent Events for transaction alerts. Only
// alerts for the authenticated account are forwarded.
func (a *API) StreamAlerts(w http.ResponseWriter, r *http.Request) {
	if a.alerts == nil {
		http.Error(w, "streaming disabled", http.StatusServiceUnavailable)
		return
	}
	subject, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ch := a.alerts.Subscribe(ctx)

	// Send an initial comment to establish the stream
	_, _ = w.Write([]byte(": stream started\n\n"))
	flusher.Flush()

	for al := range ch {
		if al.Account != subject {
			continue
		}
		payload, err := json.Marshal(al)
		if err != nil {
			continue
		}
		_, _ = w.Write([]byte("data: "))
		_, _ = w.Write(payload)
		_, _ = w.Write([]byte("\n\n"))
		flusher.Flush()
	}
}
