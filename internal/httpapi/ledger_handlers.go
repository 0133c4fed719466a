package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"campusbank.org/internal/auth"
	"campusbank.org/internal/bank"
	"campusbank.org/internal/obs"
)

type depositRequest struct {
	Amount bank.Money `json:"amount"`
}

type withdrawRequest struct {
	Amount bank.Money `json:"amount"`
	PIN    string     `json:"pin"`
}

type paymentRequest struct {
	Amount      bank.Money `json:"amount"`
	PIN         string     `json:"pin"`
	ServiceType string     `json:"service_type"`
	Reference   string     `json:"reference,omitempty"`
}

type transferRequest struct {
	From   string     `json:"from"`
	To     string     `json:"to"`
	Amount bank.Money `json:"amount"`
	PIN    string     `json:"pin"`
}

type confirmationRequest struct {
	Accept bool `json:"accept"`
}

type pendingResponse struct {
	Status            string `json:"status"`
	ConfirmationToken string `json:"confirmation_token"`
}

func (a *API) deposit(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req depositRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := acc.Deposit(req.Amount)
	if err != nil {
		handleBankError(w, r, err)
		return
	}

	obs.CountTransaction(string(entry.Kind))
	a.audit(r, "ledger.deposit", map[string]any{
		"account": acc.Number(),
		"amount":  req.Amount.String(),
	})
	writeJSON(w, http.StatusCreated, entry)
}

func (a *API) withdraw(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req withdrawRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	out, err := acc.Withdraw(req.Amount, req.PIN)
	if err != nil {
		handleBankError(w, r, err)
		return
	}
	if out.ConfirmationToken != "" {
		a.audit(r, "ledger.withdraw.pending", map[string]any{
			"account": acc.Number(),
			"amount":  req.Amount.String(),
		})
		writeJSON(w, http.StatusAccepted, pendingResponse{
			Status:            "confirmation_required",
			ConfirmationToken: out.ConfirmationToken,
		})
		return
	}

	obs.CountTransaction(string(out.Entry.Kind))
	a.audit(r, "ledger.withdraw", map[string]any{
		"account": acc.Number(),
		"amount":  req.Amount.String(),
	})
	writeJSON(w, http.StatusCreated, out.Entry)
}

// handleWithdrawalConfirmation finalizes or cancels a parked debit:
// POST /v1/withdrawals/{token}/confirmation. Transfer tokens are tried
// first so the credit leg follows an accepted transfer debit.
func (a *API) handleWithdrawalConfirmation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/v1/withdrawals/")
	token, ok := strings.CutSuffix(path, "/confirmation")
	if !ok || token == "" || strings.Contains(token, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	subject, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session required")
		return
	}

	var req confirmationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.coord.Confirm(subject, token, req.Accept)
	if errors.Is(err, bank.ErrUnknownConfirmation) {
		acc, lookupErr := a.dir.Lookup(subject)
		if lookupErr != nil {
			handleBankError(w, r, lookupErr)
			return
		}
		entry, err = acc.ConfirmWithdrawal(token, req.Accept)
	}
	if err != nil {
		handleBankError(w, r, err)
		return
	}

	obs.CountTransaction(string(entry.Kind))
	a.audit(r, "ledger.withdraw.confirmed", map[string]any{
		"account": subject,
		"amount":  (-entry.Amount).String(),
	})
	writeJSON(w, http.StatusCreated, entry)
}

func (a *API) handleTransfers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req transferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	subject, ok := auth.AccountFromContext(r.Context())
	if !ok || subject != strings.TrimSpace(req.From) {
		writeError(w, r, http.StatusForbidden, "token not valid for this account")
		return
	}

	out, err := a.coord.Transfer(req.From, req.To, req.Amount, req.PIN)
	if err != nil {
		handleBankError(w, r, err)
		return
	}
	if out.ConfirmationToken != "" {
		a.audit(r, "ledger.transfer.pending", map[string]any{
			"from":   req.From,
			"to":     req.To,
			"amount": req.Amount.String(),
		})
		writeJSON(w, http.StatusAccepted, pendingResponse{
			Status:            "confirmation_required",
			ConfirmationToken: out.ConfirmationToken,
		})
		return
	}

	obs.CountTransaction("TRANSFER")
	a.audit(r, "ledger.transfer", map[string]any{
		"from":   req.From,
		"to":     req.To,
		"amount": req.Amount.String(),
	})
	writeJSON(w, http.StatusCreated, out.Debit)
}

func (a *API) payments(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	switch r.Method {
	case http.MethodPost:
		a.pay(w, r, acc)
	case http.MethodGet:
		total, count := acc.PaymentSummary()
		writeJSON(w, http.StatusOK, map[string]any{
			"total": total,
			"count": count,
		})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) pay(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	var req paymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	service := strings.TrimSpace(req.ServiceType)
	if service == "" {
		writeError(w, r, http.StatusBadRequest, "service_type is required")
		return
	}

	entry, err := acc.Pay(req.Amount, req.PIN, service, req.Reference)
	if err != nil {
		handleBankError(w, r, err)
		return
	}

	obs.CountTransaction(string(entry.Kind))
	a.audit(r, "ledger.payment", map[string]any{
		"account":   acc.Number(),
		"amount":    req.Amount.String(),
		"service":   service,
		"reference": req.Reference,
	})
	writeJSON(w, http.StatusCreated, entry)
}

func (a *API) ledger(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": acc.Ledger(),
	})
}

func (a *API) statement(w http.ResponseWriter, r *http.Request, acc *bank.Account) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	lines := bank.Statement(acc)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strings.Join(lines, "\n") + "\n"))
}
