// Package validation contains input validation rules shared by the
// handlers and services.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 12
	MaxPasswordLength = 128
	MaxEmailLength    = 254
	MinNameLength     = 2
	MaxNameLength     = 64
	MaxSkillLength    = 48
	MaxSkills         = 20
)

var nameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} '._-]*[\p{L}\p{N}.]$`)

// ValidatePassword enforces the password policy: length bounds plus at
// least one upper, one lower, one digit and one special character.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain an uppercase letter, a lowercase letter, a digit, and a special character")
	}
	return nil
}

// ValidateEmail checks RFC 5322 address syntax and the overall length cap.
func ValidateEmail(email string) error {
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	if strings.HasSuffix(email, ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateName validates a display name.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinNameLength {
		return fmt.Errorf("name must be at least %d characters", MinNameLength)
	}
	if len(trimmed) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	if !nameRegex.MatchString(trimmed) {
		return fmt.Errorf("name contains invalid characters")
	}
	return nil
}

// ValidateSkill validates a single skill label.
func ValidateSkill(skill string) error {
	trimmed := strings.TrimSpace(skill)
	if trimmed == "" {
		return fmt.Errorf("skill cannot be empty")
	}
	if len(trimmed) > MaxSkillLength {
		return fmt.Errorf("skill must be at most %d characters", MaxSkillLength)
	}
	return nil
}

// ValidateSkills validates a skill list as a whole.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkills {
		return fmt.Errorf("at most %d skills allowed", MaxSkills)
	}
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if err := ValidateSkill(s); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(s))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate skill %q", s)
		}
		seen[key] = struct{}{}
	}
	return nil
}
