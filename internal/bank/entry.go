package bank

import "time"

// EntryKind discriminates ledger entries. Monetary kinds carry a signed
// amount; security kinds carry zero so the running-sum invariant holds
// across the whole ledger.
type EntryKind string

const (
	KindAccountCreated   EntryKind = "ACCOUNT_CREATED"
	KindDeposit          EntryKind = "DEPOSIT"
	KindWithdrawal       EntryKind = "WITHDRAWAL"
	KindTransferReceived EntryKind = "TRANSFER_RECEIVED"
	KindTransferSent     EntryKind = "TRANSFER_SENT"
	KindPayment          EntryKind = "PAYMENT"
	KindPINChanged       EntryKind = "PIN_CHANGED"
	KindCardLocked       EntryKind = "CARD_LOCKED"
	KindCardUnlocked     EntryKind = "CARD_UNLOCKED"
)

// Valid reports whether k is one of the defined entry kinds.
func (k EntryKind) Valid() bool {
	switch k {
	case KindAccountCreated, KindDeposit, KindWithdrawal, KindTransferReceived,
		KindTransferSent, KindPayment, KindPINChanged, KindCardLocked, KindCardUnlocked:
		return true
	}
	return false
}

// Monetary reports whether entries of this kind move the balance.
func (k EntryKind) Monetary() bool {
	switch k {
	case KindAccountCreated, KindDeposit, KindWithdrawal, KindTransferReceived,
		KindTransferSent, KindPayment:
		return true
	}
	return false
}

// LedgerEntry is an immutable record of one balance-affecting or
// security-affecting event. Structured fields replace the free-text
// encoding of the legacy system: aggregation (payment totals, running
// sums) never re-parses rendered strings.
type LedgerEntry struct {
	ID           string    `json:"id"`
	Time         time.Time `json:"time"`
	Kind         EntryKind `json:"kind"`
	Amount       Money     `json:"amount"`
	Balance      Money     `json:"balance"`
	Detail       string    `json:"detail,omitempty"`
	Counterparty string    `json:"counterparty,omitempty"`
	Category     string    `json:"category,omitempty"`
	Reference    string    `json:"reference,omitempty"`
}
