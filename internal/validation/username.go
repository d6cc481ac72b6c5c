// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinUsernameLen and MaxUsernameLen bound usernames in bytes.
	MinUsernameLen = 3
	MaxUsernameLen = 20
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var reservedUsernames = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"me":       {},
	"anon":     {},
	"root":     {},
	"system":   {},
	"support":  {},
	"users":    {},
	"posts":    {},
	"comments": {},
	"draft":    {},
	"swagger":  {},
	"metrics":  {},
	"health":   {},
}

// ValidateUsername checks username format, length, and reserved names.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return fmt.Errorf("username must be %d-%d characters long", MinUsernameLen, MaxUsernameLen)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	if _, reserved := reservedUsernames[strings.ToLower(username)]; reserved {
		return fmt.Errorf("username %q is reserved", username)
	}

	return nil
}
