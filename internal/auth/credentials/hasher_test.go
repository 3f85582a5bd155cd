package credentials

import (
	"strings"
	"testing"
)

func TestHashThenVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC argon2id encoding, got %q", hash)
	}
	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatal("correct password rejected")
	}
}

func TestVerifyRejectsMutatedPasswords(t *testing.T) {
	const password = "admin123"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	// Any single-character mutation must fail.
	for i := range password {
		mutated := password[:i] + "x" + password[i+1:]
		if mutated == password {
			continue
		}
		if VerifyPassword(mutated, hash) {
			t.Fatalf("mutated password %q accepted", mutated)
		}
	}

	if VerifyPassword("", hash) {
		t.Fatal("empty password accepted")
	}
}

func TestHashIsSaltedPerCall(t *testing.T) {
	first, err := HashPassword("admin")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("admin")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if !VerifyPassword("admin", first) || !VerifyPassword("admin", second) {
		t.Fatal("both salted hashes must verify")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyFailsClosedOnMalformedHashes(t *testing.T) {
	malformed := []string{
		"",
		"plainhash",
		"$argon2id$",
		"$argon2id$v=19$m=19456,t=2,p=1$notbase64!!$digest",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=19456,t=2$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=0,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
	}

	for _, h := range malformed {
		if VerifyPassword("admin", h) {
			t.Fatalf("malformed hash %q accepted", h)
		}
	}
}
