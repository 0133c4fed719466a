package bank

import (
	"fmt"
	"sync"
	"time"

	"campusbank.org/internal/auth"
)

const accountNumberPrefix = "CB-2024-"

// Directory is the in-memory registry of all accounts, keyed by account
// number. It owns the monotonic counter used to mint numbers: once
// issued a number is never reused. State lives for the process lifetime
// only; there is no removal operation.
type Directory struct {
	mu       sync.Mutex
	accounts map[string]*Account
	order    []string
	next     int
	logins   []time.Time
	alerts   AlertSink
}

// NewDirectory creates an empty registry. sink may be nil; accounts
// created through the directory publish their alert signals to it.
func NewDirectory(sink AlertSink) *Directory {
	return &Directory{
		accounts: make(map[string]*Account),
		next:     1,
		alerts:   sink,
	}
}

// Open creates an account seeded with one ACCOUNT_CREATED entry. The
// initial deposit may be zero or positive and has no upper ceiling;
// only the deposit operation is capped.
func (d *Directory) Open(holderName, pin string, initialDeposit Money) (*Account, error) {
	if initialDeposit < 0 {
		return nil, ErrInvalidAmount
	}
	if !auth.ValidPIN(pin) {
		return nil, ErrInvalidPIN
	}
	hash, err := auth.HashPIN(pin)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	number := fmt.Sprintf("%s%03d", accountNumberPrefix, d.next)
	d.next++

	acc := newAccount(number, holderName, hash, initialDeposit, d.alerts)
	d.accounts[number] = acc
	d.order = append(d.order, number)
	return acc, nil
}

// Lookup resolves an account by exact number.
func (d *Directory) Lookup(number string) (*Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	acc, ok := d.accounts[number]
	if !ok {
		return nil, ErrNotFound
	}
	return acc, nil
}

// Authenticate resolves by number and verifies the PIN. An unknown
// number and a wrong PIN are indistinguishable to the caller: both
// report ErrNotFound. On success the login is recorded.
func (d *Directory) Authenticate(number, pin string) (*Account, error) {
	d.mu.Lock()
	acc, ok := d.accounts[number]
	d.mu.Unlock()
	if !ok || !acc.VerifyPIN(pin) {
		return nil, ErrNotFound
	}

	acc.touchLogin()
	d.mu.Lock()
	d.logins = append(d.logins, time.Now().UTC())
	d.mu.Unlock()
	return acc, nil
}

// RecentLogins returns up to n most recent login timestamps, oldest first.
func (d *Directory) RecentLogins(n int) []time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n <= 0 || len(d.logins) == 0 {
		return nil
	}
	start := len(d.logins) - n
	if start < 0 {
		start = 0
	}
	out := make([]time.Time, len(d.logins)-start)
	copy(out, d.logins[start:])
	return out
}

// Len reports how many accounts exist.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.accounts)
}
