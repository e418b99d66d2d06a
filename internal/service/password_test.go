package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("senha123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "senha123" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt digest, got %q", hash)
	}
	if !h.Verify("senha123", hash) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("senha_errada", hash) {
		t.Fatalf("expected wrong password to fail")
	}
	if h.Verify("senha123", "") || h.Verify("senha123", "not-a-hash") {
		t.Fatalf("expected malformed digests to fail")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
	if h := NewBcryptHasher(bcrypt.MaxCost + 1); h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}
