package bank

import (
	"sync"
	"time"

	"campusbank.org/internal/auth"
	"campusbank.org/internal/ids"
)

// Alert is the side-effect signal emitted when an alerts-enabled
// account accepts a balance-affecting operation. It is not a ledger
// entry; delivery is best-effort.
type Alert struct {
	Account string    `json:"account"`
	Kind    EntryKind `json:"kind"`
	Amount  Money     `json:"amount"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// AlertSink consumes alert signals. Publish must not block.
type AlertSink interface {
	Publish(Alert)
}

// Account owns its credential, balance, ledger and security state.
// Every balance or security change passes through an explicit rule
// check and, when accepted, is recorded as an appended ledger entry.
// The PIN exists only as a bcrypt hash; it is compared, never read.
type Account struct {
	mu sync.Mutex

	number      string
	holder      string
	pinHash     string
	balance     Money
	createdAt   time.Time
	lastLogin   time.Time
	ledger      []LedgerEntry
	studentID   string
	affiliation string

	securityQuestion string
	securityAnswer   string

	cardLocked    bool
	alertsEnabled bool

	pending map[string]*pendingWithdrawal

	alerts AlertSink // may be nil
}

// pendingWithdrawal parks a debit that exceeded the large-withdrawal
// threshold until the caller confirms or declines it.
type pendingWithdrawal struct {
	amount       Money
	detail       string
	counterparty string
	requestedAt  time.Time
}

func newAccount(number, holder, pinHash string, initial Money, sink AlertSink) *Account {
	now := time.Now().UTC()
	a := &Account{
		number:        number,
		holder:        holder,
		pinHash:       pinHash,
		balance:       initial,
		createdAt:     now,
		lastLogin:     now,
		alertsEnabled: true,
		pending:       make(map[string]*pendingWithdrawal),
		alerts:        sink,
	}
	a.ledger = append(a.ledger, LedgerEntry{
		ID:      ids.New(),
		Time:    now,
		Kind:    KindAccountCreated,
		Amount:  initial,
		Balance: initial,
		Detail:  "initial deposit",
	})
	return a
}

func (a *Account) Number() string { return a.number }
func (a *Account) Holder() string { return a.holder }

func (a *Account) Balance() Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) CreatedAt() time.Time { return a.createdAt }

func (a *Account) LastLogin() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastLogin
}

func (a *Account) CardLocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cardLocked
}

func (a *Account) AlertsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alertsEnabled
}

// VerifyPIN compares a candidate against the stored credential. No side
// effects; repeated failures are not tracked.
func (a *Account) VerifyPIN(candidate string) bool {
	a.mu.Lock()
	hash := a.pinHash
	a.mu.Unlock()
	return auth.VerifyPIN(hash, candidate)
}

// ChangePIN replaces the credential when the old PIN matches. The new
// PIN must be four numeric digits.
func (a *Account) ChangePIN(oldPIN, newPIN string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !auth.VerifyPIN(a.pinHash, oldPIN) {
		return ErrAuthFailed
	}
	if !auth.ValidPIN(newPIN) {
		return ErrInvalidPIN
	}
	hash, err := auth.HashPIN(newPIN)
	if err != nil {
		return err
	}
	a.pinHash = hash
	a.appendLocked(KindPINChanged, 0, "", "", "", "")
	return nil
}

// SetSecurityQuestion overwrites the recovery pair unconditionally.
func (a *Account) SetSecurityQuestion(question, answer string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.securityQuestion = question
	a.securityAnswer = answer
}

func (a *Account) SecurityQuestion() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.securityQuestion
}

func (a *Account) VerifySecurityAnswer(answer string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.securityAnswer != "" && answer == a.securityAnswer
}

// SetCardLock sets the lock flag. Setting the current value again still
// appends an entry; the legacy system behaves this way and the ledger
// is the audit trail of every lock request.
func (a *Account) SetCardLock(locked bool) LedgerEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cardLocked = locked
	kind := KindCardUnlocked
	if locked {
		kind = KindCardLocked
	}
	return a.appendLocked(kind, 0, "", "", "", "")
}

// SetAlerts toggles transaction alerts. No ledger entry, no failure mode.
func (a *Account) SetAlerts(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alertsEnabled = enabled
}

// SetProfile sets the student id and affiliation label shown on the
// virtual card.
func (a *Account) SetProfile(studentID, affiliation string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.studentID = studentID
	a.affiliation = affiliation
}

func (a *Account) Profile() (studentID, affiliation string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.studentID, a.affiliation
}

// Deposit credits the account. No PIN is required; the ceiling guards
// against fat-finger amounts, not against the depositor.
func (a *Account) Deposit(amount Money) (LedgerEntry, error) {
	a.mu.Lock()
	if amount <= 0 || amount > MaxDeposit {
		a.mu.Unlock()
		return LedgerEntry{}, ErrInvalidAmount
	}
	a.balance += amount
	entry := a.appendLocked(KindDeposit, amount, "", "", "", "")
	notify := a.alertsEnabled
	a.mu.Unlock()

	if notify {
		a.emit(entry)
	}
	return entry, nil
}

// WithdrawOutcome is the result of a withdrawal request. Exactly one of
// Entry and ConfirmationToken is set: either the debit completed, or it
// was parked pending an explicit yes/no from the caller.
type WithdrawOutcome struct {
	Entry             *LedgerEntry
	ConfirmationToken string
}

// Withdraw debits the account after the ordered checks: PIN, card lock,
// amount ceiling, funds. A debit above 70% of the balance is parked and
// must be finalized through ConfirmWithdrawal.
func (a *Account) Withdraw(amount Money, pin string) (WithdrawOutcome, error) {
	return a.withdraw(amount, pin, "", "")
}

func (a *Account) withdraw(amount Money, pin, detail, counterparty string) (WithdrawOutcome, error) {
	a.mu.Lock()
	if !auth.VerifyPIN(a.pinHash, pin) {
		a.mu.Unlock()
		return WithdrawOutcome{}, ErrAuthFailed
	}
	if a.cardLocked {
		a.mu.Unlock()
		return WithdrawOutcome{}, ErrCardLocked
	}
	if amount <= 0 || amount > MaxWithdrawal {
		a.mu.Unlock()
		return WithdrawOutcome{}, ErrInvalidAmount
	}
	if amount > a.balance {
		a.mu.Unlock()
		return WithdrawOutcome{}, ErrInsufficientFunds
	}
	if int64(amount)*10 > int64(a.balance)*7 {
		token := ids.New()
		a.pending[token] = &pendingWithdrawal{
			amount:       amount,
			detail:       detail,
			counterparty: counterparty,
			requestedAt:  time.Now().UTC(),
		}
		a.mu.Unlock()
		return WithdrawOutcome{ConfirmationToken: token}, nil
	}
	entry := a.debitLocked(amount, detail, counterparty)
	notify := a.alertsEnabled
	a.mu.Unlock()

	if notify {
		a.emit(entry)
	}
	return WithdrawOutcome{Entry: &entry}, nil
}

// ConfirmWithdrawal finalizes or cancels a parked withdrawal. Declining
// leaves all state unchanged and reports ErrCancelled. The funds and
// lock checks run again at finalize time: the balance may have moved
// between request and confirmation.
func (a *Account) ConfirmWithdrawal(token string, accept bool) (*LedgerEntry, error) {
	a.mu.Lock()
	p, ok := a.pending[token]
	if !ok {
		a.mu.Unlock()
		return nil, ErrUnknownConfirmation
	}
	delete(a.pending, token)
	if !accept {
		a.mu.Unlock()
		return nil, ErrCancelled
	}
	if a.cardLocked {
		a.mu.Unlock()
		return nil, ErrCardLocked
	}
	if p.amount > a.balance {
		a.mu.Unlock()
		return nil, ErrInsufficientFunds
	}
	entry := a.debitLocked(p.amount, p.detail, p.counterparty)
	notify := a.alertsEnabled
	a.mu.Unlock()

	if notify {
		a.emit(entry)
	}
	return &entry, nil
}

// Pay debits the account for a service payment. The caller supplies and
// proves the real PIN; the legacy override credential is gone. Payments
// carry their own explicit confirmation step in every calling flow, so
// the large-withdrawal threshold does not apply here.
func (a *Account) Pay(amount Money, pin, serviceType, reference string) (LedgerEntry, error) {
	a.mu.Lock()
	if !auth.VerifyPIN(a.pinHash, pin) {
		a.mu.Unlock()
		return LedgerEntry{}, ErrAuthFailed
	}
	if a.cardLocked {
		a.mu.Unlock()
		return LedgerEntry{}, ErrCardLocked
	}
	if amount <= 0 || amount > MaxWithdrawal {
		a.mu.Unlock()
		return LedgerEntry{}, ErrInvalidAmount
	}
	if amount > a.balance {
		a.mu.Unlock()
		return LedgerEntry{}, ErrInsufficientFunds
	}
	a.balance -= amount
	entry := a.appendLocked(KindPayment, -amount, "", "", serviceType, reference)
	notify := a.alertsEnabled
	a.mu.Unlock()

	if notify {
		a.emit(entry)
	}
	return entry, nil
}

// ReceiveTransfer credits the account unconditionally: incoming funds
// have no upper bound and cannot be refused. This is what makes the
// transfer coordinator's credit leg infallible.
func (a *Account) ReceiveTransfer(amount Money, senderName string) LedgerEntry {
	a.mu.Lock()
	a.balance += amount
	entry := a.appendLocked(KindTransferReceived, amount, "", senderName, "", "")
	notify := a.alertsEnabled
	a.mu.Unlock()

	if notify {
		a.emit(entry)
	}
	return entry
}

// Ledger returns a copy of the full history in creation order.
func (a *Account) Ledger() []LedgerEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]LedgerEntry, len(a.ledger))
	copy(out, a.ledger)
	return out
}

// PaymentSummary totals PAYMENT entries from their structured amounts.
func (a *Account) PaymentSummary() (total Money, count int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.ledger {
		if e.Kind == KindPayment {
			total += -e.Amount
			count++
		}
	}
	return total, count
}

func (a *Account) touchLogin() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastLogin = time.Now().UTC()
}

// debitLocked applies an already-authorized debit. Caller holds a.mu.
func (a *Account) debitLocked(amount Money, detail, counterparty string) LedgerEntry {
	a.balance -= amount
	return a.appendLocked(KindWithdrawal, -amount, detail, counterparty, "", "")
}

// appendLocked records an entry with the current balance. Caller holds a.mu.
func (a *Account) appendLocked(kind EntryKind, amount Money, detail, counterparty, category, reference string) LedgerEntry {
	entry := LedgerEntry{
		ID:           ids.New(),
		Time:         time.Now().UTC(),
		Kind:         kind,
		Amount:       amount,
		Balance:      a.balance,
		Detail:       detail,
		Counterparty: counterparty,
		Category:     category,
		Reference:    reference,
	}
	a.ledger = append(a.ledger, entry)
	return entry
}

func (a *Account) emit(entry LedgerEntry) {
	if a.alerts == nil {
		return
	}
	a.alerts.Publish(Alert{
		Account: a.number,
		Kind:    entry.Kind,
		Amount:  entry.Amount,
		Detail:  entry.Detail,
		At:      entry.Time,
	})
}
