package bank

import "errors"

// Every failure an operation can report is a sentinel so callers
// dispatch with errors.Is. None of these is fatal; the presentation
// layer decides whether to re-attempt.
var (
	ErrNotFound            = errors.New("account not found")
	ErrAuthFailed          = errors.New("authorization failed")
	ErrCardLocked          = errors.New("card is locked")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidRecipient    = errors.New("invalid recipient")
	ErrCancelled           = errors.New("operation cancelled")
	ErrInvalidPIN          = errors.New("pin must be four numeric digits")
	ErrUnknownConfirmation = errors.New("unknown or expired confirmation")
)
