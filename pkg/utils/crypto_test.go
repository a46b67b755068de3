package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("expected hashing to succeed, got error: %v", err)
	}
	if hash == "password123" {
		t.Fatal("expected the hash to differ from the plaintext")
	}

	other, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("expected hashing to succeed, got error: %v", err)
	}
	if hash == other {
		t.Fatal("expected salted hashes to differ between calls")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("expected hashing to succeed, got error: %v", err)
	}

	if !CheckPasswordHash("password123", hash) {
		t.Fatal("expected the correct password to verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("expected a wrong password to fail verification")
	}
	if CheckPasswordHash("password123", "not-a-bcrypt-hash") {
		t.Fatal("expected a malformed hash to fail verification")
	}
}
