// Package helpdesk keeps the append-only ledger of complaint tickets.
// It is independent of the account core: tickets reference accounts by
// number only.
package helpdesk

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"campusbank.org/internal/ids"
)

// Category discriminates ticket types and determines the id prefix.
type Category string

const (
	CategoryLostCard         Category = "LOST_CARD"
	CategoryTransactionIssue Category = "TRANSACTION_ISSUE"
	CategoryInquiry          Category = "INQUIRY"
)

var ErrInvalidCategory = errors.New("invalid ticket category")

func (c Category) Valid() bool {
	switch c {
	case CategoryLostCard, CategoryTransactionIssue, CategoryInquiry:
		return true
	}
	return false
}

// Prefix is the ticket-id prefix for the category.
func (c Category) Prefix() string {
	switch c {
	case CategoryLostCard:
		return "LOST-CARD"
	case CategoryTransactionIssue:
		return "TRX"
	case CategoryInquiry:
		return "INQ"
	}
	return "TICKET"
}

// Ticket is one complaint record. Fields are category-specific
// free text and are stored without validation.
type Ticket struct {
	ID       string            `json:"id"`
	Account  string            `json:"account"`
	Category Category          `json:"category"`
	FiledAt  time.Time         `json:"filed_at"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// Desk is the append-only ticket collection. Tickets are never mutated
// or deleted.
type Desk struct {
	mu      sync.Mutex
	tickets []Ticket
}

func NewDesk() *Desk {
	return &Desk{}
}

// FileTicket appends a new ticket and returns it. The id is the
// category prefix plus a second-resolution timestamp, with a short
// random suffix so two tickets in the same second stay distinct.
func (d *Desk) FileTicket(accountNumber string, category Category, fields map[string]string) (Ticket, error) {
	if !category.Valid() {
		return Ticket{}, ErrInvalidCategory
	}
	now := time.Now().UTC()
	t := Ticket{
		ID:       fmt.Sprintf("%s-%s-%s", category.Prefix(), now.Format("20060102150405"), ids.Short()),
		Account:  accountNumber,
		Category: category,
		FiledAt:  now,
	}
	if len(fields) > 0 {
		t.Fields = make(map[string]string, len(fields))
		for k, v := range fields {
			t.Fields[k] = v
		}
	}

	d.mu.Lock()
	d.tickets = append(d.tickets, t)
	d.mu.Unlock()
	return t, nil
}

// Tickets returns all tickets in filing order.
func (d *Desk) Tickets() []Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Ticket, len(d.tickets))
	copy(out, d.tickets)
	return out
}

// TicketsForAccount returns the tickets filed for one account, in
// filing order.
func (d *Desk) TicketsForAccount(accountNumber string) []Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Ticket
	for _, t := range d.tickets {
		if t.Account == accountNumber {
			out = append(out, t)
		}
	}
	return out
}
