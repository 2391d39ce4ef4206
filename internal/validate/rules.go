package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Rule constructors. Every rule except Required passes on an empty value;
// optional fields validate only when present.

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s-]{9,}$`)
)

// dateLayout is the wire format for job dates.
const dateLayout = "2006-01-02"

// Required rejects empty or whitespace-only values.
func Required(label string) Rule {
	return func(value string) (bool, string) {
		if strings.TrimSpace(value) == "" {
			return false, fmt.Sprintf("%s is required", label)
		}
		return true, ""
	}
}

// MinLength rejects values shorter than n runes, counted after trimming.
func MinLength(label string, n int) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true, ""
		}
		if utf8.RuneCountInString(trimmed) < n {
			return false, fmt.Sprintf("%s must be at least %d characters", label, n)
		}
		return true, ""
	}
}

// MaxLength rejects values longer than n runes, counted after trimming.
func MaxLength(label string, n int) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if utf8.RuneCountInString(trimmed) > n {
			return false, fmt.Sprintf("%s must be at most %d characters", label, n)
		}
		return true, ""
	}
}

// Pattern rejects non-empty values that do not match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true, ""
		}
		if !re.MatchString(trimmed) {
			return false, msg
		}
		return true, ""
	}
}

// Email validates the field as an email address when present.
func Email(label string) Rule {
	return Pattern(emailRe, fmt.Sprintf("%s must be a valid email address", label))
}

// Phone validates the field as a phone number when present: optional
// leading +, then at least nine digits, spaces, or dashes.
func Phone(label string) Rule {
	return Pattern(phoneRe, fmt.Sprintf("%s must be a valid phone number", label))
}

// Date validates the field as a YYYY-MM-DD calendar date when present.
func Date(label string) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true, ""
		}
		if _, err := time.Parse(dateLayout, trimmed); err != nil {
			return false, fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", label)
		}
		return true, ""
	}
}

// FutureDate rejects parseable dates earlier than today.
func FutureDate(label string) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true, ""
		}
		d, err := time.Parse(dateLayout, trimmed)
		if err != nil {
			return true, "" // Date rule reports the format error
		}
		today := time.Now().Truncate(24 * time.Hour)
		if d.Before(today) {
			return false, fmt.Sprintf("%s must not be in the past", label)
		}
		return true, ""
	}
}

// PastDate rejects parseable dates later than today.
func PastDate(label string) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true, ""
		}
		d, err := time.Parse(dateLayout, trimmed)
		if err != nil {
			return true, ""
		}
		if d.After(time.Now()) {
			return false, fmt.Sprintf("%s must not be in the future", label)
		}
		return true, ""
	}
}

// OneOf rejects non-empty values outside the allowed set.
func OneOf(label string, allowed ...string) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true, ""
		}
		for _, a := range allowed {
			if trimmed == a {
				return true, ""
			}
		}
		return false, fmt.Sprintf("%s must be one of: %s", label, strings.Join(allowed, ", "))
	}
}

// Custom wraps an arbitrary predicate into a Rule. Empty values pass.
func Custom(msg string, fn func(value string) bool) Rule {
	return func(value string) (bool, string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return true, ""
		}
		if !fn(trimmed) {
			return false, msg
		}
		return true, ""
	}
}
