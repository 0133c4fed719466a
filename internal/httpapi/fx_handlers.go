package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"campusbank.org/internal/fx"
)

type convertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
}

func (a *API) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	items := make([]map[string]any, 0, len(fx.Currencies()))
	for _, code := range fx.Currencies() {
		rate, err := fx.Rate(code)
		if err != nil {
			continue
		}
		items = append(items, map[string]any{
			"code":         code,
			"per_usd_rate": rate,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"base": "USD", "items": items})
}

func (a *API) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	q := r.URL.Query()
	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "amount must be a decimal number")
		return
	}
	from, to := q.Get("from"), q.Get("to")

	converted, err := fx.Convert(amount, from, to)
	if err != nil {
		handleFXError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Converted: converted,
	})
}

func (a *API) handleDepositQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	q := r.URL.Query()
	principal, err := decimal.NewFromString(q.Get("principal"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "principal must be a decimal number")
		return
	}
	months, err := strconv.Atoi(q.Get("months"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "months must be an integer")
		return
	}

	quote, err := fx.TermDeposit(principal, months)
	if err != nil {
		handleFXError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func handleFXError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fx.ErrUnknownCurrency):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, fx.ErrInvalidAmount), errors.Is(err, fx.ErrInvalidTerm):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
