package cryptox

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash %q is not PHC argon2id format", hash)
	}

	if err := VerifyPassword("correct horse battery staple", hash); err != nil {
		t.Errorf("VerifyPassword correct password: %v", err)
	}
	if err := VerifyPassword("wrong password", hash); !errors.Is(err, ErrMismatch) {
		t.Errorf("VerifyPassword wrong password = %v, want ErrMismatch", err)
	}
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	h1, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt not applied")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$bcrypt$whatever",
		"$argon2id$v=19$m=65536,t=2,p=1$notbase64!!$also-not",
	}
	for _, hash := range tests {
		if err := VerifyPassword("anything", hash); err == nil {
			t.Errorf("VerifyPassword(%q) accepted a malformed hash", hash)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password accepted")
	}
	if err := ValidatePassword("long enough password"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
}
