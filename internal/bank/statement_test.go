package bank

import (
	"strings"
	"testing"
	"time"
)

func TestFormatEntry(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	deposit := LedgerEntry{Time: at, Kind: KindDeposit, Amount: 500_00, Balance: 6000_00}
	if got := FormatEntry(deposit); got != "[2024-06-01 10:30] DEPOSIT: +500.00. New Balance: 6000.00" {
		t.Fatalf("deposit line: %q", got)
	}

	payment := LedgerEntry{
		Time: at, Kind: KindPayment, Amount: -800_00, Balance: 5200_00,
		Category: "Visa Extension Fee", Reference: "GOV-20240601103000",
	}
	want := "[2024-06-01 10:30] PAYMENT: -800.00 for Visa Extension Fee (Ref: GOV-20240601103000). New Balance: 5200.00"
	if got := FormatEntry(payment); got != want {
		t.Fatalf("payment line:\n got %q\nwant %q", got, want)
	}

	received := LedgerEntry{Time: at, Kind: KindTransferReceived, Amount: 75_00, Balance: 75_00, Counterparty: "A Friend"}
	if got := FormatEntry(received); !strings.Contains(got, "from A Friend") {
		t.Fatalf("received line missing sender: %q", got)
	}

	// Security kinds render without amounts.
	pin := LedgerEntry{Time: at, Kind: KindPINChanged}
	if got := FormatEntry(pin); got != "[2024-06-01 10:30] PIN_CHANGED" {
		t.Fatalf("pin line: %q", got)
	}
}

// Exported statements must contain exactly one line per ledger entry,
// recoverable by re-parsing.
func TestStatementRoundTrip(t *testing.T) {
	acc := openTestAccount(t, 1000_00)
	if _, err := acc.Deposit(200_00); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := acc.Withdraw(100_00, "1234"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	acc.SetCardLock(true)

	lines := Statement(acc)
	if got, want := CountStatementEntries(lines), len(acc.Ledger()); got != want {
		t.Fatalf("statement has %d entries, ledger has %d", got, want)
	}
	if lines[1] != "              CAMPUS BRANCH BANK" {
		t.Fatalf("unexpected banner: %q", lines[1])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Number: "+acc.Number()) {
		t.Fatal("statement missing account number")
	}
	if !strings.Contains(joined, "Balance: 1100.00") {
		t.Fatal("statement missing balance")
	}
}
