package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestValidPIN(t *testing.T) {
	valid := []string{"0000", "1234", "9999"}
	for _, pin := range valid {
		if !ValidPIN(pin) {
			t.Fatalf("ValidPIN(%q) = false, want true", pin)
		}
	}
	invalid := []string{"", "123", "12345", "12a4", "12.4", " 123", "١٢٣٤"}
	for _, pin := range invalid {
		if ValidPIN(pin) {
			t.Fatalf("ValidPIN(%q) = true, want false", pin)
		}
	}
}

func TestHashAndVerifyPIN(t *testing.T) {
	hash, err := HashPIN("4321")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "4321" {
		t.Fatal("hash must not be the plaintext")
	}
	if !VerifyPIN(hash, "4321") {
		t.Fatal("correct PIN rejected")
	}
	if VerifyPIN(hash, "1234") {
		t.Fatal("wrong PIN accepted")
	}
	if VerifyPIN("", "4321") {
		t.Fatal("empty hash accepted")
	}
	if _, err := HashPIN(""); err == nil {
		t.Fatal("expected error for empty pin")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("CAMPUSBANK_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	token, err := GenerateToken("CB-2024-001", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	subject, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if subject != "CB-2024-001" {
		t.Fatalf("got subject %q, want CB-2024-001", subject)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	t.Setenv("CAMPUSBANK_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	token, err := GenerateToken("CB-2024-001", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseAndValidate(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
	if _, err := ParseAndValidate(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token: got %v, want ErrInvalidToken", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Setenv("CAMPUSBANK_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	token, err := GenerateToken("CB-2024-001", time.Millisecond)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := ParseAndValidate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestTokenGenerationValidation(t *testing.T) {
	t.Setenv("CAMPUSBANK_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, err := GenerateToken("", time.Minute); err == nil {
		t.Fatal("expected error for empty account number")
	}
	if _, err := GenerateToken("CB-2024-001", 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestMissingSecret(t *testing.T) {
	t.Setenv("CAMPUSBANK_AUTH_SECRET", "")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, err := GenerateToken("CB-2024-001", time.Minute); err == nil {
		t.Fatal("expected error with no configured secret")
	}
}

func TestAccountContext(t *testing.T) {
	ctx := ContextWithAccount(context.Background(), "CB-2024-007")
	got, ok := AccountFromContext(ctx)
	if !ok || got != "CB-2024-007" {
		t.Fatalf("got %q/%v, want CB-2024-007/true", got, ok)
	}
	if _, ok := AccountFromContext(context.Background()); ok {
		t.Fatal("empty context must not carry an account")
	}
}
