package security

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal plaintext")
	}
	if !hasher.Verify("secret123", hash) {
		t.Fatal("expected matching password to verify")
	}
	if hasher.Verify("secret124", hash) {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	h1, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same input must differ")
	}
}

func TestPasswordHashRejectsEmpty(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	if _, err := hasher.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestPasswordHasherClampsCost(t *testing.T) {
	hasher := NewPasswordHasher(99)
	if hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("expected out-of-range cost to clamp to default, got %d", hasher.cost)
	}
}
