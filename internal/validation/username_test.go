package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{name: "valid simple", username: "coolwriter", ok: true},
		{name: "valid with underscore", username: "cool_writer", ok: true},
		{name: "valid with hyphen", username: "cool-writer", ok: true},
		{name: "valid mixed case", username: "CoolWriter99", ok: true},
		{name: "minimum length", username: "abc", ok: true},
		{name: "maximum length", username: "abcdefghijklmnopqrst", ok: true},
		{name: "too short", username: "ab", ok: false},
		{name: "too long", username: "abcdefghijklmnopqrstu", ok: false},
		{name: "empty", username: "", ok: false},
		{name: "space", username: "bad username", ok: false},
		{name: "symbol", username: "bad!username", ok: false},
		{name: "unicode", username: "écrivain", ok: false},
		{name: "reserved admin", username: "admin", ok: false},
		{name: "reserved admin mixed case", username: "Admin", ok: false},
		{name: "reserved me", username: "me", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.username)
			if tc.ok && err != nil {
				t.Fatalf("expected valid username, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid username, got nil error")
			}
		})
	}
}
