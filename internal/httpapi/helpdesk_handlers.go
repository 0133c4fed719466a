package httpapi

import (
	"net/http"

	"campusbank.org/internal/auth"
	"campusbank.org/internal/bank"
	"campusbank.org/internal/helpdesk"
	"campusbank.org/internal/obs"
)

type fileTicketRequest struct {
	Category helpdesk.Category `json:"category"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func (a *API) handleTickets(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		tickets := a.desk.TicketsForAccount(subject)
		if tickets == nil {
			tickets = []helpdesk.Ticket{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": tickets})
	case http.MethodPost:
		a.fileTicket(w, r, subject)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) fileTicket(w http.ResponseWriter, r *http.Request, subject string) {
	var req fileTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := a.desk.FileTicket(subject, req.Category, req.Fields)
	if err != nil {
		handleBankError(w, r, err)
		return
	}

	// A lost-card report locks the card immediately.
	if req.Category == helpdesk.CategoryLostCard {
		if acc, lookupErr := a.dir.Lookup(subject); lookupErr == nil && !acc.CardLocked() {
			entry := acc.SetCardLock(true)
			obs.CountTransaction(string(bank.KindCardLocked))
			a.audit(r, "security.card_lock", map[string]any{
				"account": subject,
				"locked":  true,
				"ticket":  ticket.ID,
				"entry":   entry.ID,
			})
		}
	}

	obs.CountTicket(string(ticket.Category))
	a.audit(r, "helpdesk.ticket_filed", map[string]any{
		"account":  subject,
		"ticket":   ticket.ID,
		"category": string(ticket.Category),
	})
	writeJSON(w, http.StatusCreated, ticket)
}
