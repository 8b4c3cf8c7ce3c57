package service

import (
	"errors"
	"strings"
	"testing"

	"authsvc/internal/domain"
)

func TestHashProducesSelfDescribingFormat(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected argon2id PHC prefix, got %s", hash)
	}
	if hash == "secret" {
		t.Fatalf("hash must never equal the plaintext")
	}
}

func TestHashSaltsEveryCall(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	h2, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct salts to produce distinct hashes")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	if _, err := hasher.Hash(""); !errors.Is(err, domain.ErrPasswordNotSet) {
		t.Fatalf("expected ErrPasswordNotSet, got %v", err)
	}
}

func TestVerifyMatchesOriginalPlaintext(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ok, err := hasher.Verify("secret", hash)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatalf("expected original plaintext to verify")
	}

	ok, err = hasher.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("expected no error on mismatch, got %v", err)
	}
	if ok {
		t.Fatalf("expected wrong plaintext to fail")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	cases := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, bad := range cases {
		if _, err := hasher.Verify("secret", bad); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("expected ErrMalformedHash for %q, got %v", bad, err)
		}
	}
}
