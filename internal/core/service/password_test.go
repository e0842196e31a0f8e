package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3nha-forte")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3nha-forte" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	ok, err := h.Compare(hash, "s3nha-forte")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = h.Compare(hash, "outra")
	if err != nil {
		t.Fatalf("mismatch must not be an error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	if _, err := h.Compare("not-a-bcrypt-hash", "x"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestNewPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	if h := NewPasswordHasher(99); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}
