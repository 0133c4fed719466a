package httpapi

import (
	"net/http"

	"campusbank.org/internal/bank"
	"campusbank.org/internal/obs"
)

type changePINRequest struct {
	OldPIN string `json:"old_pin"`
	NewPIN string `json:"new_pin"`
}

type cardLockRequest struct {
	Locked bool `json:"locked"`
}

type alertsRequest struct {
	Enabled bool `json:"enabled"`
}

type securityQuestionRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (a *API) changePIN(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	var req changePINRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := acc.ChangePIN(req.OldPIN, req.NewPIN); err != nil {
		handleBankError(w, r, err)
		return
	}

	obs.CountTransaction(string(bank.KindPINChanged))
	a.audit(r, "security.pin_changed", map[string]any{
		"account": acc.Number(),
	})
	writeJSON(w, http.StatusOK, map[string]any{"status": "pin_changed"})
}

func (a *API) cardLock(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	var req cardLockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry := acc.SetCardLock(req.Locked)
	obs.CountTransaction(string(entry.Kind))
	a.audit(r, "security.card_lock", map[string]any{
		"account": acc.Number(),
		"locked":  req.Locked,
	})
	writeJSON(w, http.StatusOK, entry)
}

func (a *API) alertSettings(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	var req alertsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	acc.SetAlerts(req.Enabled)
	a.audit(r, "security.alerts", map[string]any{
		"account": acc.Number(),
		"enabled": req.Enabled,
	})
	writeJSON(w, http.StatusOK, map[string]any{"alerts_enabled": req.Enabled})
}

func (a *API) securityQuestion(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	switch r.Method {
	case http.MethodPut:
		var req securityQuestionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if req.Question == "" || req.Answer == "" {
			writeError(w, r, http.StatusBadRequest, "question and answer are required")
			return
		}
		acc.SetSecurityQuestion(req.Question, req.Answer)
		a.audit(r, "security.question_set", map[string]any{
			"account": acc.Number(),
		})
		writeJSON(w, http.StatusOK, map[string]any{"status": "security_question_set"})
	case http.MethodGet:
		// The question is readable; the answer never is.
		writeJSON(w, http.StatusOK, map[string]any{
			"question": acc.SecurityQuestion(),
		})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}
