package helpdesk

import (
	"errors"
	"strings"
	"testing"
)

func TestFileTicket(t *testing.T) {
	desk := NewDesk()

	ticket, err := desk.FileTicket("CB-2024-001", CategoryLostCard, map[string]string{"last_seen": "library"})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if !strings.HasPrefix(ticket.ID, "LOST-CARD-") {
		t.Fatalf("got id %q, want LOST-CARD- prefix", ticket.ID)
	}
	if ticket.Account != "CB-2024-001" {
		t.Fatalf("got account %q", ticket.Account)
	}
	if ticket.Fields["last_seen"] != "library" {
		t.Fatalf("fields not stored: %+v", ticket.Fields)
	}

	trx, err := desk.FileTicket("CB-2024-001", CategoryTransactionIssue, nil)
	if err != nil {
		t.Fatalf("file trx: %v", err)
	}
	if !strings.HasPrefix(trx.ID, "TRX-") {
		t.Fatalf("got id %q, want TRX- prefix", trx.ID)
	}
	inq, err := desk.FileTicket("CB-2024-002", CategoryInquiry, nil)
	if err != nil {
		t.Fatalf("file inq: %v", err)
	}
	if !strings.HasPrefix(inq.ID, "INQ-") {
		t.Fatalf("got id %q, want INQ- prefix", inq.ID)
	}
}

func TestFileTicketInvalidCategory(t *testing.T) {
	desk := NewDesk()
	if _, err := desk.FileTicket("CB-2024-001", Category("SOMETHING"), nil); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("got %v, want ErrInvalidCategory", err)
	}
	if got := len(desk.Tickets()); got != 0 {
		t.Fatalf("rejected filing stored %d tickets", got)
	}
}

// Tickets filed in the same second must still get distinct ids.
func TestTicketIDsDistinct(t *testing.T) {
	desk := NewDesk()
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		ticket, err := desk.FileTicket("CB-2024-001", CategoryInquiry, nil)
		if err != nil {
			t.Fatalf("file %d: %v", i, err)
		}
		if seen[ticket.ID] {
			t.Fatalf("duplicate ticket id %q", ticket.ID)
		}
		seen[ticket.ID] = true
	}
}

func TestTicketsForAccount(t *testing.T) {
	desk := NewDesk()
	if _, err := desk.FileTicket("CB-2024-001", CategoryInquiry, nil); err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, err := desk.FileTicket("CB-2024-002", CategoryInquiry, nil); err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, err := desk.FileTicket("CB-2024-001", CategoryLostCard, nil); err != nil {
		t.Fatalf("file: %v", err)
	}

	mine := desk.TicketsForAccount("CB-2024-001")
	if len(mine) != 2 {
		t.Fatalf("got %d tickets, want 2", len(mine))
	}
	// Filing order preserved.
	if mine[0].Category != CategoryInquiry || mine[1].Category != CategoryLostCard {
		t.Fatalf("unexpected order: %v then %v", mine[0].Category, mine[1].Category)
	}
	if got := desk.TicketsForAccount("CB-2024-404"); got != nil {
		t.Fatalf("expected nil for unknown account, got %d", len(got))
	}
}
