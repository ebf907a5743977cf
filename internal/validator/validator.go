// Package validator checks assignment syntax for aliases, environment
// variables, and shell functions before any mutation is applied.
package validator

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// maxKeyLength is the maximum allowed length for item keys and group names.
	maxKeyLength = 64

	// maxValueLength is the maximum allowed length for item values.
	maxValueLength = 4096
)

// keyRegex validates item keys: letters, digits, and underscores, not
// starting with a digit. Group names follow the same rule since both
// end up as shell identifiers and file name components.
var keyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Sentinel errors for assignment validation.
var (
	// ErrMissingEquals indicates the input has no '=' separator.
	ErrMissingEquals = errors.New("missing '=' separator")

	// ErrEmptyKey indicates the text before '=' is empty.
	ErrEmptyKey = errors.New("empty key")

	// ErrEmptyValue indicates the text after '=' is empty.
	ErrEmptyValue = errors.New("empty value")

	// ErrInvalidKey indicates the key fails the identifier rule or is too long.
	ErrInvalidKey = errors.New("invalid key")

	// ErrValueTooLong indicates the value exceeds the size limit.
	ErrValueTooLong = errors.New("value too long")
)

// ParseAssignment splits raw KEY=VALUE input on the first '=' and
// validates both sides. Surrounding whitespace is trimmed from key and
// value before validation. The value may itself contain '=' characters
// and multi-line shell source.
func ParseAssignment(raw string) (key, value string, err error) {
	eq := strings.Index(raw, "=")
	if eq < 0 {
		return "", "", errors.Wrapf(ErrMissingEquals, "expected KEY=VALUE, got %q", raw)
	}

	key = strings.TrimSpace(raw[:eq])
	value = strings.TrimSpace(raw[eq+1:])

	if key == "" {
		return "", "", ErrEmptyKey
	}
	if value == "" {
		return "", "", ErrEmptyValue
	}
	if err := ValidateKey(key); err != nil {
		return "", "", err
	}
	if err := ValidateValue(value); err != nil {
		return "", "", err
	}
	return key, value, nil
}

// ValidateKey checks that key is a valid shell identifier of at most 64
// characters.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if len(key) > maxKeyLength {
		return errors.Wrapf(ErrInvalidKey, "key %q exceeds %d characters", key, maxKeyLength)
	}
	if !keyRegex.MatchString(key) {
		return errors.Wrapf(ErrInvalidKey, "key %q must start with a letter or underscore and contain only letters, digits, and underscores", key)
	}
	return nil
}

// ValidateValue checks that value is non-empty and within the size
// limit. Values are otherwise opaque.
func ValidateValue(value string) error {
	if value == "" {
		return ErrEmptyValue
	}
	if len(value) > maxValueLength {
		return errors.Wrapf(ErrValueTooLong, "value exceeds %d bytes", maxValueLength)
	}
	return nil
}

// ValidateGroupName applies the identifier rule to group names. Group
// names become file name components (<group>.<shell>), so they carry
// the same constraints as item keys.
func ValidateGroupName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidKey, "group name is empty")
	}
	if len(name) > maxKeyLength {
		return errors.Wrapf(ErrInvalidKey, "group name %q exceeds %d characters", name, maxKeyLength)
	}
	if !keyRegex.MatchString(name) {
		return errors.Wrapf(ErrInvalidKey, "group name %q must start with a letter or underscore and contain only letters, digits, and underscores", name)
	}
	return nil
}
