package httpapi

import (
	"net/http"
	"strings"
	"time"

	"campusbank.org/internal/auth"
	"campusbank.org/internal/bank"
)

type openAccountRequest struct {
	Holder         string     `json:"holder"`
	PIN            string     `json:"pin"`
	InitialDeposit bank.Money `json:"initial_deposit"`
	StudentID      string     `json:"student_id,omitempty"`
	Affiliation    string     `json:"affiliation,omitempty"`
}

type accountResponse struct {
	Number        string     `json:"number"`
	Holder        string     `json:"holder"`
	Balance       bank.Money `json:"balance"`
	StudentID     string     `json:"student_id,omitempty"`
	Affiliation   string     `json:"affiliation,omitempty"`
	CardLocked    bool       `json:"card_locked"`
	AlertsEnabled bool       `json:"alerts_enabled"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     time.Time  `json:"last_login"`
}

func accountView(acc *bank.Account) accountResponse {
	studentID, affiliation := acc.Profile()
	return accountResponse{
		Number:        acc.Number(),
		Holder:        acc.Holder(),
		Balance:       acc.Balance(),
		StudentID:     studentID,
		Affiliation:   affiliation,
		CardLocked:    acc.CardLocked(),
		AlertsEnabled: acc.AlertsEnabled(),
		CreatedAt:     acc.CreatedAt(),
		LastLogin:     acc.LastLogin(),
	}
}

func (a *API) handleAccountsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.openAccount(w, r)
	default:
		methodNotAllowed(w, r, http.MethodPost)
	}
}

// handleAccountResource routes /v1/accounts/{number} and its
// subresources. Every path here is bearer-scoped: the token subject
// must match the account number in the path.
func (a *API) handleAccountResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/accounts/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	number := path
	sub := ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		number, sub = path[:i], path[i+1:]
	}

	acc, ok := a.requireAccount(w, r, number)
	if !ok {
		return
	}

	switch sub {
	case "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		writeJSON(w, http.StatusOK, accountView(acc))
	case "deposits":
		a.deposit(w, r, acc)
	case "withdrawals":
		a.withdraw(w, r, acc)
	case "payments":
		a.payments(w, r, acc)
	case "ledger":
		a.ledger(w, r, acc)
	case "statement":
		a.statement(w, r, acc)
	case "pin":
		a.changePIN(w, r, acc)
	case "card-lock":
		a.cardLock(w, r, acc)
	case "alerts":
		a.alertSettings(w, r, acc)
	case "security-question":
		a.securityQuestion(w, r, acc)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

// requireAccount resolves the account and enforces that the session
// token was issued for it.
func (a *API) requireAccount(w http.ResponseWriter, r *http.Request, number string) (*bank.Account, bool) {
	subject, ok := auth.AccountFromContext(r.Context())
	if !ok || subject != number {
		writeError(w, r, http.StatusForbidden, "token not valid for this account")
		return nil, false
	}
	acc, err := a.dir.Lookup(number)
	if err != nil {
		handleBankError(w, r, err)
		return nil, false
	}
	return acc, true
}

func (a *API) openAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	holder := strings.TrimSpace(req.Holder)
	if holder == "" {
		writeError(w, r, http.StatusBadRequest, "holder is required")
		return
	}

	acc, err := a.dir.Open(holder, req.PIN, req.InitialDeposit)
	if err != nil {
		handleBankError(w, r, err)
		return
	}
	if req.StudentID != "" || req.Affiliation != "" {
		acc.SetProfile(req.StudentID, req.Affiliation)
	}

	a.audit(r, "account.open", map[string]any{
		"account":         acc.Number(),
		"initial_deposit": req.InitialDeposit.String(),
	})

	w.Header().Set("Location", "/v1/accounts/"+acc.Number())
	writeJSON(w, http.StatusCreated, accountView(acc))
}
