package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"campusbank.org/internal/bank"
	"campusbank.org/internal/helpdesk"
)

// teller is the interactive console front end over the ledger core.
// It only collects input and renders outcomes; every rule check lives
// in internal/bank.
type teller struct {
	in    *bufio.Scanner
	dir   *bank.Directory
	coord *bank.Coordinator
	desk  *helpdesk.Desk

	current *bank.Account
}

func main() {
	dir := bank.NewDirectory(nil)
	t := &teller{
		in:    bufio.NewScanner(os.Stdin),
		dir:   dir,
		coord: bank.NewCoordinator(dir),
		desk:  helpdesk.NewDesk(),
	}

	if os.Getenv("CAMPUSBANK_DEMO_SEED") == "1" {
		if acc, err := dir.Open("Aisha Rahman", "4321", 1500_00); err == nil {
			fmt.Printf("Demo account ready: %s (PIN 4321)\n", acc.Number())
		}
	}

	fmt.Println("========================================")
	fmt.Println("          CAMPUS BRANCH BANK")
	fmt.Println("========================================")

	for {
		fmt.Println()
		fmt.Println("1. Login")
		fmt.Println("2. Open Account")
		fmt.Println("3. Exit")
		switch t.prompt("Select option (1-3): ") {
		case "1":
			t.login()
		case "2":
			t.openAccount()
		case "3":
			fmt.Println("Goodbye.")
			return
		default:
			fmt.Println("Invalid selection.")
		}
	}
}

func (t *teller) prompt(label string) string {
	fmt.Print(label)
	if !t.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(t.in.Text())
}

func (t *teller) promptAmount(label string) (bank.Money, bool) {
	amount, err := bank.ParseAmount(t.prompt(label))
	if err != nil {
		fmt.Println("Invalid amount:", err)
		return 0, false
	}
	return amount, true
}

func (t *teller) login() {
	number := t.prompt("Account number: ")
	pin := t.prompt("PIN: ")
	acc, err := t.dir.Authenticate(number, pin)
	if err != nil {
		fmt.Println("Login failed: invalid account or PIN.")
		return
	}
	t.current = acc
	fmt.Printf("Welcome back, %s.\n", acc.Holder())
	t.dashboard()
}

func (t *teller) openAccount() {
	holder := t.prompt("Account holder name: ")
	pin := t.prompt("Choose a 4-digit PIN: ")
	initial, ok := t.promptAmount("Initial deposit: ")
	if !ok {
		return
	}
	acc, err := t.dir.Open(holder, pin, initial)
	if err != nil {
		fmt.Println("Could not open account:", err)
		return
	}
	fmt.Printf("Account opened. Your account number is %s.\n", acc.Number())
}

func (t *teller) dashboard() {
	for t.current != nil {
		fmt.Println()
		fmt.Printf("Account %s | Balance %s\n", t.current.Number(), t.current.Balance())
		fmt.Println("1. Deposit")
		fmt.Println("2. Withdraw")
		fmt.Println("3. Transfer")
		fmt.Println("4. Statement")
		fmt.Println("5. Transaction History")
		fmt.Println("6. Currency Converter")
		fmt.Println("7. Fixed Deposit Calculator")
		fmt.Println("8. Payment Hub")
		fmt.Println("9. Security Center")
		fmt.Println("10. Help & Complaint Desk")
		fmt.Println("11. Logout")
		switch t.prompt("Select option (1-11): ") {
		case "1":
			t.deposit()
		case "2":
			t.withdraw()
		case "3":
			t.transfer()
		case "4":
			t.statement()
		case "5":
			t.history()
		case "6":
			t.currencyConverter()
		case "7":
			t.depositCalculator()
		case "8":
			t.paymentHub()
		case "9":
			t.securityCenter()
		case "10":
			t.helpDesk()
		case "11":
			t.current = nil
		default:
			fmt.Println("Invalid selection.")
		}
	}
}

func (t *teller) deposit() {
	amount, ok := t.promptAmount("Deposit amount: ")
	if !ok {
		return
	}
	entry, err := t.current.Deposit(amount)
	if err != nil {
		fmt.Println("Deposit failed:", err)
		return
	}
	fmt.Printf("Deposited %s. New balance: %s\n", entry.Amount, entry.Balance)
}

func (t *teller) withdraw() {
	amount, ok := t.promptAmount("Withdrawal amount: ")
	if !ok {
		return
	}
	pin := t.prompt("Enter your PIN: ")
	out, err := t.current.Withdraw(amount, pin)
	if err != nil {
		fmt.Println("Withdrawal failed:", err)
		return
	}
	if out.ConfirmationToken != "" {
		accept := strings.EqualFold(t.prompt("This exceeds 70% of your balance. Proceed? (Y/N): "), "y")
		entry, err := t.current.ConfirmWithdrawal(out.ConfirmationToken, accept)
		if err != nil {
			fmt.Println("Withdrawal not completed:", err)
			return
		}
		fmt.Printf("Withdrawn %s. New balance: %s\n", entry.Amount.Abs(), entry.Balance)
		return
	}
	fmt.Printf("Withdrawn %s. New balance: %s\n", out.Entry.Amount.Abs(), out.Entry.Balance)
}

func (t *teller) transfer() {
	toNumber := t.prompt("Recipient account number: ")
	amount, ok := t.promptAmount("Transfer amount: ")
	if !ok {
		return
	}
	pin := t.prompt("Enter your PIN: ")
	out, err := t.coord.Transfer(t.current.Number(), toNumber, amount, pin)
	if err != nil {
		fmt.Println("Transfer failed:", err)
		return
	}
	if out.ConfirmationToken != "" {
		accept := strings.EqualFold(t.prompt("This exceeds 70% of your balance. Proceed? (Y/N): "), "y")
		entry, err := t.coord.Confirm(t.current.Number(), out.ConfirmationToken, accept)
		if err != nil {
			fmt.Println("Transfer not completed:", err)
			return
		}
		fmt.Printf("Transferred %s. New balance: %s\n", entry.Amount.Abs(), entry.Balance)
		return
	}
	fmt.Printf("Transferred %s. New balance: %s\n", out.Debit.Amount.Abs(), out.Debit.Balance)
}

// statement prints the account statement and offers a file export. A
// failed export is a warning, never an error: the ledger is the record.
func (t *teller) statement() {
	lines := bank.Statement(t.current)
	for _, line := range lines {
		fmt.Println(line)
	}

	if !strings.EqualFold(t.prompt("Export statement to file? (Y/N): "), "y") {
		return
	}
	name := fmt.Sprintf("statement_%s_%s.txt", t.current.Number(), time.Now().Format("20060102150405"))
	if err := os.WriteFile(name, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		fmt.Println("Warning: could not write statement file:", err)
		return
	}
	fmt.Println("Statement saved to", name)
}

func (t *teller) history() {
	entries := t.current.Ledger()
	if len(entries) == 0 {
		fmt.Println("No transactions yet.")
		return
	}
	for _, e := range entries {
		fmt.Println(bank.FormatEntry(e))
	}
	total, count := t.current.PaymentSummary()
	if count > 0 {
		fmt.Printf("Payments so far: %d totalling %s\n", count, total)
	}
}

func (t *teller) securityCenter() {
	for {
		fmt.Println()
		fmt.Println("SECURITY CENTER")
		fmt.Println("1. Change PIN")
		fmt.Println("2. Card Lock / Unlock")
		fmt.Println("3. Transaction Alerts")
		fmt.Println("4. Security Question")
		fmt.Println("5. Recent Logins")
		fmt.Println("6. Back")
		switch t.prompt("Select option (1-6): ") {
		case "1":
			oldPIN := t.prompt("Current PIN: ")
			newPIN := t.prompt("New 4-digit PIN: ")
			if err := t.current.ChangePIN(oldPIN, newPIN); err != nil {
				fmt.Println("PIN not changed:", err)
			} else {
				fmt.Println("PIN changed.")
			}
		case "2":
			if t.current.CardLocked() {
				t.current.SetCardLock(false)
				fmt.Println("Card unlocked.")
			} else {
				t.current.SetCardLock(true)
				fmt.Println("Card locked. Withdrawals and payments are blocked.")
			}
		case "3":
			enabled := !t.current.AlertsEnabled()
			t.current.SetAlerts(enabled)
			if enabled {
				fmt.Println("Transaction alerts enabled.")
			} else {
				fmt.Println("Transaction alerts disabled.")
			}
		case "4":
			question := t.prompt("Security question: ")
			answer := t.prompt("Answer: ")
			if question == "" || answer == "" {
				fmt.Println("Question and answer are both required.")
				break
			}
			t.current.SetSecurityQuestion(question, answer)
			fmt.Println("Security question saved.")
		case "5":
			logins := t.dir.RecentLogins(5)
			if len(logins) == 0 {
				fmt.Println("No recorded logins.")
				break
			}
			for _, at := range logins {
				fmt.Println("  ", at.Format("2006-01-02 15:04:05"))
			}
		case "6":
			return
		default:
			fmt.Println("Invalid selection.")
		}
	}
}

func (t *teller) helpDesk() {
	for {
		fmt.Println()
		fmt.Println("HELP & COMPLAINT DESK")
		fmt.Println("1. Report Lost Card")
		fmt.Println("2. Report Transaction Issue")
		fmt.Println("3. General Inquiry")
		fmt.Println("4. My Tickets")
		fmt.Println("5. Back")
		switch t.prompt("Select option (1-5): ") {
		case "1":
			t.reportLostCard()
		case "2":
			detail := t.prompt("Describe the issue: ")
			t.fileTicket(helpdesk.CategoryTransactionIssue, map[string]string{"detail": detail})
		case "3":
			subject := t.prompt("Inquiry subject: ")
			t.fileTicket(helpdesk.CategoryInquiry, map[string]string{"subject": subject})
		case "4":
			tickets := t.desk.TicketsForAccount(t.current.Number())
			if len(tickets) == 0 {
				fmt.Println("No tickets on file.")
				break
			}
			for _, tk := range tickets {
				fmt.Printf("  %s  %s  %s\n", tk.ID, tk.Category, tk.FiledAt.Format("2006-01-02 15:04"))
			}
		case "5":
			return
		default:
			fmt.Println("Invalid selection.")
		}
	}
}

// reportLostCard locks the card first, then files the ticket; a lost
// card must stop spending immediately even if the filing fails.
func (t *teller) reportLostCard() {
	lastSeen := t.prompt("Where was the card last seen? ")
	if !t.current.CardLocked() {
		t.current.SetCardLock(true)
		fmt.Println("Your card has been locked.")
	}
	t.fileTicket(helpdesk.CategoryLostCard, map[string]string{"last_seen": lastSeen})
}

func (t *teller) fileTicket(category helpdesk.Category, fields map[string]string) {
	ticket, err := t.desk.FileTicket(t.current.Number(), category, fields)
	if err != nil {
		fmt.Println("Could not file ticket:", err)
		return
	}
	fmt.Println("Ticket filed. Reference:", ticket.ID)
}
