package bank

import (
	"fmt"
	"strings"
	"time"
)

const (
	statementRule   = "=================================================="
	statementBanner = "              CAMPUS BRANCH BANK"
	statementTitle  = "               ACCOUNT STATEMENT"
	entryTimeLayout = "2006-01-02 15:04"
)

// Statement renders the account and its full ledger as plain-text
// lines. The caller owns all file naming and filesystem interaction;
// the core never writes files.
func Statement(a *Account) []string {
	entries := a.Ledger()
	lines := []string{
		statementRule,
		statementBanner,
		statementTitle,
		statementRule,
		"Holder: " + a.Holder(),
		"Number: " + a.Number(),
		"Date: " + time.Now().UTC().Format(entryTimeLayout),
		"Balance: " + a.Balance().String(),
		"--------------------------------------------------",
		"TRANSACTIONS:",
	}
	for _, e := range entries {
		lines = append(lines, FormatEntry(e))
	}
	lines = append(lines, statementRule)
	return lines
}

// FormatEntry renders one ledger entry in the statement line shape:
//
//	[2024-06-01 10:30] DEPOSIT: +500.00. New Balance: 6000.00
//	[2024-06-01 10:31] PIN_CHANGED
func FormatEntry(e LedgerEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Time.Format(entryTimeLayout), e.Kind)
	if e.Kind.Monetary() {
		fmt.Fprintf(&b, ": %s", e.Amount.Signed())
		if e.Category != "" {
			fmt.Fprintf(&b, " for %s", e.Category)
		}
		if e.Counterparty != "" {
			switch e.Kind {
			case KindTransferReceived:
				fmt.Fprintf(&b, " from %s", e.Counterparty)
			default:
				fmt.Fprintf(&b, " to %s", e.Counterparty)
			}
		}
		if e.Reference != "" {
			fmt.Fprintf(&b, " (Ref: %s)", e.Reference)
		}
		fmt.Fprintf(&b, ". New Balance: %s", e.Balance)
	}
	return b.String()
}

// CountStatementEntries re-parses statement lines and counts the ledger
// entries they contain. Exists for the export round-trip property:
// exporting then re-parsing must match the in-memory ledger length.
func CountStatementEntries(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "[") {
			n++
		}
	}
	return n
}
