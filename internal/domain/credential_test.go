package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCredentialFieldsFullProjection(t *testing.T) {
	fc := CredentialForCreate{Username: "u1", Email: "u1@x.com", Password: "hash"}
	cred := NewCredential(fc, "$argon2id$fake")

	names, values := cred.Fields()
	if len(names) != len(values) {
		t.Fatalf("expected names and values to match, got %d vs %d", len(names), len(values))
	}

	want := []string{"id", "created_at", "updated_at", "last_login", "needs_verify", "is_blocked", "username", "email", "password"}
	if len(names) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected field %d to be %s, got %s", i, name, names[i])
		}
	}

	// last_login arranca ausente y se enlaza como NULL.
	if values[3].Arg() != nil {
		t.Fatalf("expected nil last_login bind, got %v", values[3].Arg())
	}
	if values[8].Arg() != "$argon2id$fake" {
		t.Fatalf("expected password hash bind, got %v", values[8].Arg())
	}
}

func TestNewCredentialDefaults(t *testing.T) {
	cred := NewCredential(CredentialForCreate{Username: "u1", Email: "u1@x.com", Password: "p"}, "hash")

	if cred.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected a generated id")
	}
	if cred.NeedsVerify || cred.IsBlocked {
		t.Fatalf("expected flags to default to false")
	}
	if cred.LastLogin != nil {
		t.Fatalf("expected nil last login, got %v", cred.LastLogin)
	}
	if !cred.CreatedAt.Equal(cred.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at on creation")
	}
}

func TestCredentialForCreateValidate(t *testing.T) {
	cases := []struct {
		name    string
		payload CredentialForCreate
		wantErr error
	}{
		{"valid", CredentialForCreate{Username: "u", Email: "e@x.com", Password: "p"}, nil},
		{"missing username", CredentialForCreate{Email: "e@x.com", Password: "p"}, ErrUsernameNotSet},
		{"missing email", CredentialForCreate{Username: "u", Password: "p"}, ErrEmailNotSet},
		{"missing password", CredentialForCreate{Username: "u", Email: "e@x.com"}, ErrPasswordNotSet},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCredentialForUpdateFieldsOnlyPresent(t *testing.T) {
	fu := NewCredentialForUpdate()

	names, values := fu.Fields()
	if len(names) != 1 || names[0] != "updated_at" {
		t.Fatalf("expected only updated_at, got %v", names)
	}
	if len(values) != 1 {
		t.Fatalf("expected one value, got %d", len(values))
	}

	hash := "newhash"
	fu.Password = &hash
	now := time.Now().UTC()
	fu.LastLogin = &now

	names, values = fu.Fields()
	if len(names) != 3 {
		t.Fatalf("expected three fields, got %v", names)
	}
	if names[0] != "updated_at" {
		t.Fatalf("expected updated_at first, got %s", names[0])
	}
	if names[1] != "last_login" || names[2] != "password" {
		t.Fatalf("unexpected field order: %v", names)
	}
	if values[2].Arg() != "newhash" {
		t.Fatalf("expected password bind, got %v", values[2].Arg())
	}
}

func TestCredentialForUpdateDistinguishesAbsentFromZero(t *testing.T) {
	fu := NewCredentialForUpdate()
	blocked := false
	fu.IsBlocked = &blocked

	names, values := fu.Fields()
	if len(names) != 2 || names[1] != "is_blocked" {
		t.Fatalf("expected explicit false to be present, got %v", names)
	}
	if values[1].Arg() != false {
		t.Fatalf("expected false bind, got %v", values[1].Arg())
	}
}
