package bank

import "sync"

// Coordinator moves funds between two accounts as a paired
// withdrawal+credit. The debit runs the full withdrawal rule set; the
// credit is unconditional, so once the debit lands no partial-transfer
// state is reachable. A debit parked for large-withdrawal confirmation
// remembers its recipient so the credit still follows on acceptance.
type Coordinator struct {
	mu      sync.Mutex
	dir     *Directory
	pending map[string]pendingTransfer // confirmation token -> legs
}

type pendingTransfer struct {
	from string
	to   string
}

func NewCoordinator(dir *Directory) *Coordinator {
	return &Coordinator{
		dir:     dir,
		pending: make(map[string]pendingTransfer),
	}
}

// TransferOutcome mirrors WithdrawOutcome: either the transfer
// completed (Debit set) or it awaits confirmation.
type TransferOutcome struct {
	Debit             *LedgerEntry
	ConfirmationToken string
}

// Transfer debits from and credits to. Self-transfers and unknown
// recipients fail before any state changes.
func (c *Coordinator) Transfer(fromNumber, toNumber string, amount Money, pin string) (TransferOutcome, error) {
	if fromNumber == toNumber {
		return TransferOutcome{}, ErrInvalidRecipient
	}
	to, err := c.dir.Lookup(toNumber)
	if err != nil {
		return TransferOutcome{}, ErrInvalidRecipient
	}
	from, err := c.dir.Lookup(fromNumber)
	if err != nil {
		return TransferOutcome{}, err
	}

	out, err := from.withdraw(amount, pin, "transfer to "+to.Holder(), to.Number())
	if err != nil {
		return TransferOutcome{}, err
	}
	if out.ConfirmationToken != "" {
		c.mu.Lock()
		c.pending[out.ConfirmationToken] = pendingTransfer{from: fromNumber, to: toNumber}
		c.mu.Unlock()
		return TransferOutcome{ConfirmationToken: out.ConfirmationToken}, nil
	}

	to.ReceiveTransfer(amount, from.Holder())
	return TransferOutcome{Debit: out.Entry}, nil
}

// Confirm finalizes or cancels a parked transfer. Only tokens minted by
// this coordinator for fromNumber are accepted; everything else is
// ErrUnknownConfirmation.
func (c *Coordinator) Confirm(fromNumber, token string, accept bool) (*LedgerEntry, error) {
	c.mu.Lock()
	legs, ok := c.pending[token]
	if ok && legs.from == fromNumber {
		delete(c.pending, token)
	} else {
		// A foreign caller must not be able to consume the token.
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return nil, ErrUnknownConfirmation
	}

	from, err := c.dir.Lookup(legs.from)
	if err != nil {
		return nil, err
	}
	entry, err := from.ConfirmWithdrawal(token, accept)
	if err != nil {
		return nil, err
	}

	// The debit landed; the credit leg cannot fail.
	to, err := c.dir.Lookup(legs.to)
	if err != nil {
		return nil, err
	}
	to.ReceiveTransfer(-entry.Amount, from.Holder())
	return entry, nil
}
