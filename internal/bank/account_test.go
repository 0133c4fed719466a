package bank

import (
	"errors"
	"testing"
)

func openTestAccount(t *testing.T, initial Money) *Account {
	t.Helper()
	acc, err := NewDirectory(nil).Open("Test Holder", "1234", initial)
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	return acc
}

func TestOpenSeedsLedger(t *testing.T) {
	acc := openTestAccount(t, 500_00)
	entries := acc.Ledger()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Kind != KindAccountCreated {
		t.Fatalf("got kind %s, want %s", e.Kind, KindAccountCreated)
	}
	if e.Amount != 500_00 || e.Balance != 500_00 {
		t.Fatalf("got amount=%d balance=%d, want 50000/50000", e.Amount, e.Balance)
	}
}

func TestDepositBounds(t *testing.T) {
	acc := openTestAccount(t, 0)

	for _, amount := range []Money{0, -100, MaxDeposit + 1} {
		if _, err := acc.Deposit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Deposit(%d): got %v, want ErrInvalidAmount", amount, err)
		}
	}
	if acc.Balance() != 0 {
		t.Fatalf("balance moved on rejected deposits: %d", acc.Balance())
	}
	if got := len(acc.Ledger()); got != 1 {
		t.Fatalf("ledger grew on rejected deposits: %d entries", got)
	}

	entry, err := acc.Deposit(MaxDeposit)
	if err != nil {
		t.Fatalf("Deposit at ceiling: %v", err)
	}
	if entry.Balance != MaxDeposit {
		t.Fatalf("got balance %d, want %d", entry.Balance, MaxDeposit)
	}
}

func TestWithdrawChecksInOrder(t *testing.T) {
	acc := openTestAccount(t, 1000_00)

	// Wrong PIN fails first, even with an invalid amount.
	if _, err := acc.Withdraw(-5, "9999"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}

	acc.SetCardLock(true)
	if _, err := acc.Withdraw(100_00, "1234"); !errors.Is(err, ErrCardLocked) {
		t.Fatalf("got %v, want ErrCardLocked", err)
	}
	acc.SetCardLock(false)

	if _, err := acc.Withdraw(0, "1234"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	if _, err := acc.Withdraw(MaxWithdrawal+1, "1234"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	if _, err := acc.Withdraw(2000_00, "1234"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}

	if acc.Balance() != 1000_00 {
		t.Fatalf("balance moved on rejected withdrawals: %d", acc.Balance())
	}
}

func TestWithdrawBelowThresholdSettles(t *testing.T) {
	acc := openTestAccount(t, 1000_00)

	// 700.00 of 1000.00 is exactly 70% and may pass without confirmation.
	out, err := acc.Withdraw(700_00, "1234")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if out.ConfirmationToken != "" {
		t.Fatal("700 of 1000 must not require confirmation")
	}
	if out.Entry == nil || out.Entry.Balance != 300_00 {
		t.Fatalf("unexpected outcome entry: %+v", out.Entry)
	}
	if out.Entry.Amount != -700_00 {
		t.Fatalf("got amount %d, want -70000", out.Entry.Amount)
	}
}

func TestWithdrawAboveThresholdParks(t *testing.T) {
	acc := openTestAccount(t, 1000_00)

	out, err := acc.Withdraw(701_00, "1234")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if out.ConfirmationToken == "" {
		t.Fatal("701 of 1000 must require confirmation")
	}
	if acc.Balance() != 1000_00 {
		t.Fatalf("balance moved before confirmation: %d", acc.Balance())
	}

	// Decline: nothing changes, the token is gone.
	if _, err := acc.ConfirmWithdrawal(out.ConfirmationToken, false); !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if acc.Balance() != 1000_00 {
		t.Fatalf("balance moved on declined confirmation: %d", acc.Balance())
	}
	if _, err := acc.ConfirmWithdrawal(out.ConfirmationToken, true); !errors.Is(err, ErrUnknownConfirmation) {
		t.Fatalf("token must be single-use: got %v", err)
	}

	// Accept on a fresh request.
	out, err = acc.Withdraw(701_00, "1234")
	if err != nil {
		t.Fatalf("second withdraw: %v", err)
	}
	entry, err := acc.ConfirmWithdrawal(out.ConfirmationToken, true)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if entry.Balance != 299_00 {
		t.Fatalf("got balance %d, want 29900", entry.Balance)
	}
	if entry.Kind != KindWithdrawal || entry.Amount != -701_00 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestConfirmWithdrawalRechecksState(t *testing.T) {
	acc := openTestAccount(t, 1000_00)

	out, err := acc.Withdraw(800_00, "1234")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// Funds drained between request and confirmation.
	if _, err := acc.Withdraw(500_00, "1234"); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if _, err := acc.ConfirmWithdrawal(out.ConfirmationToken, true); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}

	// Card locked between request and confirmation.
	out, err = acc.Withdraw(400_00, "1234")
	if err != nil {
		t.Fatalf("second withdraw: %v", err)
	}
	acc.SetCardLock(true)
	if _, err := acc.ConfirmWithdrawal(out.ConfirmationToken, true); !errors.Is(err, ErrCardLocked) {
		t.Fatalf("got %v, want ErrCardLocked", err)
	}
}

func TestPayRequiresRealPIN(t *testing.T) {
	acc := openTestAccount(t, 1000_00)

	if _, err := acc.Pay(100_00, "0000", "Tuition Fees", "UNIV-1"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("master-PIN era credential must not work: got %v", err)
	}

	before := len(acc.Ledger())
	entry, err := acc.Pay(100_00, "1234", "Tuition Fees", "UNIV-1")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if entry.Kind != KindPayment || entry.Amount != -100_00 || entry.Balance != 900_00 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Category != "Tuition Fees" || entry.Reference != "UNIV-1" {
		t.Fatalf("payment metadata missing: %+v", entry)
	}
	// One payment, one entry.
	if got := len(acc.Ledger()); got != before+1 {
		t.Fatalf("ledger grew by %d entries, want 1", got-before)
	}

	total, count := acc.PaymentSummary()
	if total != 100_00 || count != 1 {
		t.Fatalf("summary got total=%d count=%d, want 10000/1", total, count)
	}
}

func TestChangePIN(t *testing.T) {
	acc := openTestAccount(t, 0)

	if err := acc.ChangePIN("9999", "5678"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
	if err := acc.ChangePIN("1234", "12a4"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("got %v, want ErrInvalidPIN", err)
	}
	if err := acc.ChangePIN("1234", "56789"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("got %v, want ErrInvalidPIN", err)
	}

	if err := acc.ChangePIN("1234", "5678"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if acc.VerifyPIN("1234") {
		t.Fatal("old PIN still accepted")
	}
	if !acc.VerifyPIN("5678") {
		t.Fatal("new PIN rejected")
	}

	entries := acc.Ledger()
	last := entries[len(entries)-1]
	if last.Kind != KindPINChanged || last.Amount != 0 {
		t.Fatalf("unexpected last entry: %+v", last)
	}
}

func TestReceiveTransferUnconditional(t *testing.T) {
	acc := openTestAccount(t, 0)
	acc.SetCardLock(true)

	// Incoming funds ignore the lock and the deposit ceiling.
	entry := acc.ReceiveTransfer(MaxDeposit+1, "Someone Generous")
	if entry.Kind != KindTransferReceived {
		t.Fatalf("got kind %s, want %s", entry.Kind, KindTransferReceived)
	}
	if entry.Counterparty != "Someone Generous" {
		t.Fatalf("got counterparty %q", entry.Counterparty)
	}
	if acc.Balance() != MaxDeposit+1 {
		t.Fatalf("got balance %d, want %d", acc.Balance(), MaxDeposit+1)
	}
}

func TestSecurityQuestion(t *testing.T) {
	acc := openTestAccount(t, 0)
	if acc.VerifySecurityAnswer("") {
		t.Fatal("empty answer must never verify")
	}
	acc.SetSecurityQuestion("First pet?", "rex")
	if acc.SecurityQuestion() != "First pet?" {
		t.Fatalf("got question %q", acc.SecurityQuestion())
	}
	if !acc.VerifySecurityAnswer("rex") {
		t.Fatal("correct answer rejected")
	}
	if acc.VerifySecurityAnswer("REX") {
		t.Fatal("answers are exact-match")
	}
}

// The running balance must always equal the sum of entry amounts across
// the full ledger, no matter which operations ran.
func TestBalanceEqualsEntrySum(t *testing.T) {
	acc := openTestAccount(t, 1000_00)

	if _, err := acc.Deposit(250_00); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := acc.Withdraw(300_00, "1234"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := acc.Pay(50_00, "1234", "Gas Bill", "UTIL-1"); err != nil {
		t.Fatalf("pay: %v", err)
	}
	acc.ReceiveTransfer(75_00, "A Friend")
	if err := acc.ChangePIN("1234", "4321"); err != nil {
		t.Fatalf("change pin: %v", err)
	}
	acc.SetCardLock(true)
	acc.SetCardLock(false)

	var sum Money
	for _, e := range acc.Ledger() {
		sum += e.Amount
	}
	if sum != acc.Balance() {
		t.Fatalf("entry sum %d != balance %d", sum, acc.Balance())
	}
	if acc.Balance() != 975_00 {
		t.Fatalf("got balance %d, want 97500", acc.Balance())
	}
}

type captureSink struct {
	alerts []Alert
}

func (c *captureSink) Publish(a Alert) { c.alerts = append(c.alerts, a) }

func TestAlertEmission(t *testing.T) {
	sink := &captureSink{}
	dir := NewDirectory(sink)
	acc, err := dir.Open("Alerted Holder", "1234", 1000_00)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := acc.Deposit(100_00); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(sink.alerts))
	}
	if sink.alerts[0].Account != acc.Number() || sink.alerts[0].Kind != KindDeposit {
		t.Fatalf("unexpected alert: %+v", sink.alerts[0])
	}

	acc.SetAlerts(false)
	if _, err := acc.Deposit(100_00); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Fatal("alert emitted while disabled")
	}
}
