package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"campusbank.org/internal/bank"
	"campusbank.org/internal/fx"
)

// service is one line of a payment-hub fee table. A zero Amount means
// the user enters the amount themselves.
type service struct {
	Name   string
	Amount bank.Money
}

var (
	universityServices = []service{
		{"Tuition Fees", 16_000_00},
		{"Dormitory Charges", 1_000_00},
		{"Library Fees", 300_00},
		{"Exam Registration", 500_00},
	}
	governmentServices = []service{
		{"Visa Extension Fee", 800_00},
		{"Residence Permit", 400_00},
		{"PSB Registration", 200_00},
		{"Notary Services", 300_00},
	}
	insuranceServices = []service{
		{"Medical Insurance Renewal", 800_00},
		{"Travel Insurance", 500_00},
		{"Personal Accident Insurance", 800_00},
	}
	walletServices = []service{
		{"Alipay", 0},
		{"WeChat Pay", 0},
		{"UnionPay", 0},
	}
	utilityServices = []service{
		{"Electricity & Water", 0},
		{"Internet & Phone", 0},
		{"Gas Bill", 0},
	}
	quickPayServices = []service{
		{"Nantong University Tuition", 16_000_00},
		{"Visa Extension Fee", 800_00},
		{"Dormitory Monthly", 1_000_00},
		{"Medical Insurance", 800_00},
		{"Alipay Top-up (Min)", 100_00},
	}
)

func (t *teller) paymentHub() {
	for {
		fmt.Println()
		fmt.Println("PAYMENT HUB")
		fmt.Printf("Available balance: %s\n", t.current.Balance())
		fmt.Println("1. University Official Payments")
		fmt.Println("2. Government & Visa Services")
		fmt.Println("3. Insurance Services")
		fmt.Println("4. Digital Wallet Top-up")
		fmt.Println("5. Utility Bills")
		fmt.Println("6. Quick Pay")
		fmt.Println("7. Payment History")
		fmt.Println("8. Back")
		switch t.prompt("Select option (1-8): ") {
		case "1":
			t.payFromCatalog("UNIVERSITY PAYMENTS", universityServices, "UNIV")
		case "2":
			t.payFromCatalog("GOVERNMENT & VISA SERVICES", governmentServices, "GOV")
		case "3":
			t.payFromCatalog("INSURANCE SERVICES", insuranceServices, "INS")
		case "4":
			t.payFromCatalog("DIGITAL WALLET TOP-UP", walletServices, "WALLET")
		case "5":
			t.payFromCatalog("UTILITY BILLS", utilityServices, "UTIL")
		case "6":
			t.quickPay()
		case "7":
			t.paymentHistory()
		case "8":
			return
		default:
			fmt.Println("Invalid selection.")
		}
	}
}

// payFromCatalog shows a fee table, lets the user pick a service or
// enter a custom one, then runs the confirm-PIN-pay sequence.
func (t *teller) payFromCatalog(title string, services []service, refPrefix string) {
	fmt.Println()
	fmt.Println(title)
	for i, s := range services {
		if s.Amount > 0 {
			fmt.Printf("%d. %s - %s\n", i+1, s.Name, s.Amount)
		} else {
			fmt.Printf("%d. %s\n", i+1, s.Name)
		}
	}
	custom := len(services) + 1
	fmt.Printf("%d. Custom\n", custom)

	choice, err := strconv.Atoi(t.prompt(fmt.Sprintf("Select (1-%d): ", custom)))
	if err != nil || choice < 1 || choice > custom {
		fmt.Println("Invalid selection.")
		return
	}

	var name string
	var amount bank.Money
	switch {
	case choice == custom:
		name = t.prompt("Service name: ")
		a, ok := t.promptAmount("Amount: ")
		if !ok {
			return
		}
		amount = a
	default:
		picked := services[choice-1]
		name = picked.Name
		amount = picked.Amount
		if amount == 0 {
			a, ok := t.promptAmount(fmt.Sprintf("Amount for %s: ", name))
			if !ok {
				return
			}
			amount = a
		}
	}

	t.confirmAndPay(name, amount, refPrefix, "")
}

func (t *teller) quickPay() {
	fmt.Println()
	fmt.Println("QUICK PAY TEMPLATES")
	for i, s := range quickPayServices {
		fmt.Printf("%d. %s - %s\n", i+1, s.Name, s.Amount)
	}
	choice, err := strconv.Atoi(t.prompt(fmt.Sprintf("Select (1-%d): ", len(quickPayServices))))
	if err != nil || choice < 1 || choice > len(quickPayServices) {
		fmt.Println("Invalid selection.")
		return
	}
	picked := quickPayServices[choice-1]
	t.confirmAndPay(picked.Name, picked.Amount, quickPayPrefix(picked.Name), "Q")
}

func quickPayPrefix(name string) string {
	switch {
	case strings.Contains(name, "University"):
		return "UNIV"
	case strings.Contains(name, "Visa"):
		return "GOV"
	case strings.Contains(name, "Insurance"):
		return "INS"
	case strings.Contains(name, "Alipay"):
		return "WALLET"
	}
	return "UTIL"
}

// confirmAndPay is the shared tail of every payment flow: explicit
// yes/no, PIN entry, the debit, then the receipt line.
func (t *teller) confirmAndPay(name string, amount bank.Money, refPrefix, refTag string) {
	if !strings.EqualFold(t.prompt(fmt.Sprintf("Confirm payment of %s for %s? (Y/N): ", amount, name)), "y") {
		fmt.Println("Payment cancelled.")
		return
	}
	pin := t.prompt("Enter your PIN: ")
	reference := fmt.Sprintf("%s-%s%s", refPrefix, refTag, time.Now().Format("20060102150405"))
	entry, err := t.current.Pay(amount, pin, name, reference)
	if err != nil {
		fmt.Println("Payment failed:", err)
		return
	}
	fmt.Println("Payment successful!")
	fmt.Printf("Service:   %s\n", name)
	fmt.Printf("Amount:    %s\n", amount)
	fmt.Printf("Reference: %s\n", reference)
	fmt.Printf("Balance:   %s\n", entry.Balance)
}

func (t *teller) paymentHistory() {
	var found bool
	for _, e := range t.current.Ledger() {
		if e.Kind != bank.KindPayment {
			continue
		}
		found = true
		fmt.Printf("%s  %s  %s  (Ref: %s)\n",
			e.Time.Format("2006-01-02 15:04"), e.Category, e.Amount.Abs(), e.Reference)
	}
	if !found {
		fmt.Println("No payments yet.")
		return
	}
	total, count := t.current.PaymentSummary()
	fmt.Printf("Total: %d payments, %s\n", count, total)
}

func (t *teller) currencyConverter() {
	fmt.Println()
	fmt.Println("CURRENCY CONVERTER")
	fmt.Println("Supported:", strings.Join(fx.Currencies(), ", "))
	amount, err := decimal.NewFromString(t.prompt("Amount: "))
	if err != nil {
		fmt.Println("Invalid amount.")
		return
	}
	from := strings.ToUpper(t.prompt("From currency: "))
	to := strings.ToUpper(t.prompt("To currency: "))
	converted, err := fx.Convert(amount, from, to)
	if err != nil {
		fmt.Println("Conversion failed:", err)
		return
	}
	fmt.Printf("%s %s = %s %s\n", amount.StringFixed(2), from, converted.StringFixed(2), to)
}

func (t *teller) depositCalculator() {
	fmt.Println()
	fmt.Println("FIXED DEPOSIT CALCULATOR")
	principal, err := decimal.NewFromString(t.prompt("Principal: "))
	if err != nil {
		fmt.Println("Invalid amount.")
		return
	}
	months, err := strconv.Atoi(t.prompt("Term in months (1-60): "))
	if err != nil {
		fmt.Println("Invalid term.")
		return
	}
	quote, err := fx.TermDeposit(principal, months)
	if err != nil {
		fmt.Println("Could not quote:", err)
		return
	}
	fmt.Printf("Annual rate: %s%%\n", quote.AnnualRate.Mul(decimal.NewFromInt(100)).StringFixed(0))
	fmt.Printf("Interest:    %s\n", quote.Interest.StringFixed(2))
	fmt.Printf("At maturity: %s\n", quote.Total.StringFixed(2))
}
