package hash

import (
	"errors"
	"strings"
	"testing"
)

func TestAdminPasswordRoundTrip(t *testing.T) {
	const password = "correct-horse-battery"

	stored, err := Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !Valid(stored) {
		t.Fatalf("Hash() produced %q, which is not usable as ADMIN_PASSWORD_HASH", stored)
	}

	tests := []struct {
		name    string
		attempt string
		want    error
	}{
		{name: "same password", attempt: password},
		{name: "wrong password", attempt: "battery-staple-horse", want: ErrMismatch},
		{name: "different case", attempt: strings.ToUpper(password), want: ErrMismatch},
		{name: "empty attempt", attempt: "", want: ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(stored, tt.attempt)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compare() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHashRejectsShortAdminPassword(t *testing.T) {
	for _, password := range []string{"", "admin", "1234567"} {
		if _, err := Hash(password); err == nil {
			t.Errorf("Hash(%q) expected error", password)
		}
	}
}

func TestHashSaltsEachCall(t *testing.T) {
	first, err := Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("Hash() returned the same value twice for one password")
	}
}

func TestCompareMalformedStoredHash(t *testing.T) {
	// A plaintext ADMIN_PASSWORD_HASH is a configuration error, not a bad login.
	err := Compare("correct-horse-battery", "correct-horse-battery")
	if err == nil || errors.Is(err, ErrMismatch) {
		t.Errorf("Compare() error = %v, want non-mismatch error", err)
	}
	if Valid("correct-horse-battery") {
		t.Error("Valid() accepted a plaintext value")
	}
}
