package httpapi

import (
	"net/http"
	"strings"
	"time"

	"campusbank.org/internal/auth"
)

type sessionRequest struct {
	Number string `json:"number"`
	PIN    string `json:"pin"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	Holder    string    `json:"holder"`
	ExpiresAt time.Time `json:"expires_at"`
}

const sessionTTL = 15 * time.Minute

// handleSessions authenticates an account number + PIN and issues a
// bearer token scoped to that account. An unknown number and a wrong
// PIN produce the same response: the caller learns nothing about which
// part failed.
func (a *API) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	number := strings.TrimSpace(req.Number)
	if number == "" || req.PIN == "" {
		writeError(w, r, http.StatusBadRequest, "number and pin are required")
		return
	}

	acc, err := a.dir.Authenticate(number, req.PIN)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "invalid account or pin")
		return
	}

	token, err := auth.GenerateToken(acc.Number(), sessionTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	a.audit(r, "session.issued", map[string]any{
		"account": acc.Number(),
	})

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     token,
		Holder:    acc.Holder(),
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	})
}
