package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"campusbank.org/internal/auth"
	"campusbank.org/internal/obs"
)

func TestLogEvent(t *testing.T) {
	logger := obs.Logger()
	original := logger.Writer()
	logger.SetFlags(0)
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(original)

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")
	ctx = auth.ContextWithAccount(ctx, "CB-2024-001")

	if err := LogEvent(ctx, "ledger.deposit", map[string]any{"amount": "500.00"}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	line := buf.String()
	if line == "" {
		t.Fatal("expected log output")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log not valid JSON: %v", err)
	}
	if entry["type"] != "audit" {
		t.Fatalf("unexpected type: %v", entry["type"])
	}
	if entry["event"] != "ledger.deposit" {
		t.Fatalf("unexpected event: %v", entry["event"])
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("unexpected request id: %v", entry["request_id"])
	}
	if entry["account"] != "CB-2024-001" {
		t.Fatalf("unexpected account: %v", entry["account"])
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok || fields["amount"] != "500.00" {
		t.Fatalf("fields missing or incorrect: %v", entry["fields"])
	}
}

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for empty event name")
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "rid-1")
	if got := RequestIDFromContext(ctx); got != "rid-1" {
		t.Fatalf("got %q, want rid-1", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
	// Blank ids are not attached.
	ctx = WithRequestID(context.Background(), "   ")
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
