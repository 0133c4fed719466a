// Package fx is a pure, stateless pricing table: five fixed exchange
// rates relative to USD, plus the term-deposit quote calculator. Rates
// are positive and fixed for the process lifetime; nothing here touches
// the ledger core.
package fx

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidTerm     = errors.New("term must be between 1 and 60 months")
	ErrInvalidAmount   = errors.New("amount must be positive")
)

// codes lists supported currencies in display order.
var codes = []string{"USD", "CNY", "BDT", "SAR", "EUR"}

var rates = map[string]decimal.Decimal{
	"USD": decimal.RequireFromString("1.00"),
	"CNY": decimal.RequireFromString("7.20"),
	"BDT": decimal.RequireFromString("122.37"),
	"SAR": decimal.RequireFromString("3.75"),
	"EUR": decimal.RequireFromString("0.92"),
}

// Currencies returns the supported currency codes in display order.
func Currencies() []string {
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// Rate returns the per-USD rate for a currency code.
func Rate(code string) (decimal.Decimal, error) {
	r, ok := rates[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return r, nil
}

// Convert reprices amount from one currency into another, rounded to
// two decimal places: amount / rate[from] * rate[to].
func Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	rf, err := Rate(from)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rt, err := Rate(to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Div(rf).Mul(rt).Round(2), nil
}

// DepositQuote is a fixed-term deposit projection.
type DepositQuote struct {
	Principal  decimal.Decimal `json:"principal"`
	Months     int             `json:"months"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	Interest   decimal.Decimal `json:"interest"`
	Total      decimal.Decimal `json:"total"`
}

// TermDeposit quotes simple interest on a fixed deposit: 5% annual for
// terms of a year or longer, 3% below that.
func TermDeposit(principal decimal.Decimal, months int) (DepositQuote, error) {
	if !principal.IsPositive() {
		return DepositQuote{}, ErrInvalidAmount
	}
	if months < 1 || months > 60 {
		return DepositQuote{}, ErrInvalidTerm
	}
	rate := decimal.RequireFromString("0.03")
	if months >= 12 {
		rate = decimal.RequireFromString("0.05")
	}
	interest := principal.Mul(rate).Mul(decimal.NewFromInt(int64(months))).Div(decimal.NewFromInt(12)).Round(2)
	return DepositQuote{
		Principal:  principal,
		Months:     months,
		AnnualRate: rate,
		Interest:   interest,
		Total:      principal.Add(interest),
	}, nil
}
