package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenMintVerifyRoundtrip(t *testing.T) {
	tokens := NewTokenService("test-secret")
	applicationID := uuid.New()
	studentID := uuid.New()

	token, err := tokens.Mint(applicationID, studentID)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := tokens.Verify(token, 0)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.ApplicationID != applicationID.String() {
		t.Fatalf("application id mismatch: %s", claims.ApplicationID)
	}
	if claims.StudentID != studentID.String() {
		t.Fatalf("student id mismatch: %s", claims.StudentID)
	}
}

func TestTokenMintIsUnique(t *testing.T) {
	tokens := NewTokenService("test-secret")
	applicationID := uuid.New()
	studentID := uuid.New()

	first, err := tokens.Mint(applicationID, studentID)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	second, err := tokens.Mint(applicationID, studentID)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if first == second {
		t.Fatal("two mints for the same subject must differ")
	}
}

func TestTokenVerifyRejectsTampering(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.Mint(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := tokens.Verify(tampered, 0); err == nil {
		t.Fatal("expected tampered token to fail verification")
	}

	other := NewTokenService("different-secret")
	if _, err := other.Verify(token, 0); err == nil {
		t.Fatal("expected verification under a different secret to fail")
	}
}

func TestTokenVerifyMaxAge(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.Mint(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := tokens.Verify(token, time.Hour); err != nil {
		t.Fatalf("fresh token must pass a max-age check: %v", err)
	}
	if _, err := tokens.Verify(token, time.Nanosecond); err == nil {
		t.Fatal("expected an expired token to fail verification")
	}
}
