package validator

import (
	"strings"
	"testing"

	"github.com/thoreinstein/shtick/internal/errors"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKey   string
		wantValue string
		wantErr   error
	}{
		{
			name:      "simple assignment",
			raw:       "EDITOR=vim",
			wantKey:   "EDITOR",
			wantValue: "vim",
		},
		{
			name:      "value contains equals",
			raw:       "ll=ls -la --color=auto",
			wantKey:   "ll",
			wantValue: "ls -la --color=auto",
		},
		{
			name:      "whitespace trimmed",
			raw:       "  PATH  =  /usr/local/bin  ",
			wantKey:   "PATH",
			wantValue: "/usr/local/bin",
		},
		{
			name:      "underscore key",
			raw:       "_private=1",
			wantKey:   "_private",
			wantValue: "1",
		},
		{
			name:      "multiline value",
			raw:       "greet=echo hello\necho world",
			wantKey:   "greet",
			wantValue: "echo hello\necho world",
		},
		{
			name:    "no equals",
			raw:     "novalue",
			wantErr: ErrMissingEquals,
		},
		{
			name:    "only equals",
			raw:     "=",
			wantErr: ErrEmptyKey,
		},
		{
			name:    "empty key",
			raw:     "=value",
			wantErr: ErrEmptyKey,
		},
		{
			name:    "empty value",
			raw:     "key=",
			wantErr: ErrEmptyValue,
		},
		{
			name:    "whitespace-only value",
			raw:     "key=   ",
			wantErr: ErrEmptyValue,
		},
		{
			name:    "key starts with digit",
			raw:     "123bad=x",
			wantErr: ErrInvalidKey,
		},
		{
			name:    "key with hyphen",
			raw:     "my-alias=ls",
			wantErr: ErrInvalidKey,
		},
		{
			name:    "key with space inside",
			raw:     "my key=ls",
			wantErr: ErrInvalidKey,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: ErrMissingEquals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := ParseAssignment(tt.raw)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("ParseAssignment(%q) succeeded, want error %v", tt.raw, tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseAssignment(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseAssignment(%q) failed: %v", tt.raw, err)
			}
			if key != tt.wantKey {
				t.Errorf("key = %q, want %q", key, tt.wantKey)
			}
			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
		})
	}
}

func TestValidateKey_LengthBoundary(t *testing.T) {
	key64 := strings.Repeat("a", 64)
	if err := ValidateKey(key64); err != nil {
		t.Errorf("64-character key should be valid, got: %v", err)
	}

	key65 := strings.Repeat("a", 65)
	err := ValidateKey(key65)
	if err == nil {
		t.Fatal("65-character key should be invalid")
	}
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("error = %v, want ErrInvalidKey", err)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"plain word", "ll", nil},
		{"uppercase", "EDITOR", nil},
		{"mixed with digits", "k9s_cfg", nil},
		{"leading underscore", "_x", nil},
		{"empty", "", ErrEmptyKey},
		{"leading digit", "9lives", ErrInvalidKey},
		{"hyphen", "a-b", ErrInvalidKey},
		{"dot", "a.b", ErrInvalidKey},
		{"unicode", "héllo", ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateKey(%q) = %v, want nil", tt.key, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	if err := ValidateValue("ls -la"); err != nil {
		t.Errorf("plain value should be valid, got: %v", err)
	}
	if err := ValidateValue(strings.Repeat("x", maxValueLength)); err != nil {
		t.Errorf("value at the limit should be valid, got: %v", err)
	}

	err := ValidateValue(strings.Repeat("x", maxValueLength+1))
	if !errors.Is(err, ErrValueTooLong) {
		t.Errorf("oversized value error = %v, want ErrValueTooLong", err)
	}

	if err := ValidateValue(""); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("empty value error = %v, want ErrEmptyValue", err)
	}
}

func TestValidateGroupName(t *testing.T) {
	tests := []struct {
		name    string
		group   string
		wantErr bool
	}{
		{"plain word", "work", false},
		{"persistent is a valid name", "persistent", false},
		{"underscores", "my_group", false},
		{"empty", "", true},
		{"hyphen", "my-group", true},
		{"leading digit", "1group", true},
		{"too long", strings.Repeat("g", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupName(tt.group)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("ValidateGroupName(%q) = %v, want ErrInvalidKey", tt.group, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateGroupName(%q) = %v, want nil", tt.group, err)
			}
		})
	}
}
