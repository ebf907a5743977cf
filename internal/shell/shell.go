// Package shell defines the supported shell dialects: their syntax for
// aliases, environment variables, and functions, their loader syntax,
// and detection of the user's shell.
package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sahilm/fuzzy"
)

// Shell identifies a supported shell dialect.
type Shell string

// The closed set of supported shells.
const (
	Bash       Shell = "bash"
	Csh        Shell = "csh"
	Dash       Shell = "dash"
	Elvish     Shell = "elvish"
	Es         Shell = "es"
	Fish       Shell = "fish"
	Ksh        Shell = "ksh"
	Mksh       Shell = "mksh"
	Nushell    Shell = "nushell"
	Oil        Shell = "oil"
	Powershell Shell = "powershell"
	Rc         Shell = "rc"
	Tcsh       Shell = "tcsh"
	Xonsh      Shell = "xonsh"
	Yash       Shell = "yash"
	Zsh        Shell = "zsh"
)

// ErrUnsupportedShell indicates a shell name outside the supported set.
var ErrUnsupportedShell = errors.New("unsupported shell")

// binaryAliases maps alternate binary names to their dialect, for
// $SHELL values like /usr/bin/pwsh.
var binaryAliases = map[string]Shell{
	"pwsh": Powershell,
	"nu":   Nushell,
	"osh":  Oil,
}

func (s Shell) String() string {
	return string(s)
}

// Valid reports whether s is a supported shell.
func (s Shell) Valid() bool {
	_, ok := dialects[s]
	return ok
}

// Supported returns all supported shells sorted by name.
func Supported() []Shell {
	shells := make([]Shell, 0, len(dialects))
	for s := range dialects {
		shells = append(shells, s)
	}
	sort.Slice(shells, func(i, j int) bool { return shells[i] < shells[j] })
	return shells
}

// SupportedNames returns all supported shell names sorted.
func SupportedNames() []string {
	shells := Supported()
	names := make([]string, 0, len(shells))
	for _, s := range shells {
		names = append(names, string(s))
	}
	return names
}

// Parse validates a shell name. Unknown names fail with
// ErrUnsupportedShell carrying a "did you mean" suggestion when a
// close match exists.
func Parse(name string) (Shell, error) {
	s := Shell(strings.ToLower(strings.TrimSpace(name)))
	if s.Valid() {
		return s, nil
	}
	if suggestion := closest(string(s)); suggestion != "" {
		return "", errors.Wrapf(ErrUnsupportedShell, "%q (did you mean %q?)", name, suggestion)
	}
	return "", errors.Wrapf(ErrUnsupportedShell, "%q (supported: %s)", name, strings.Join(SupportedNames(), ", "))
}

// Detect resolves the current shell from the $SHELL basename.
func Detect() (Shell, error) {
	env := os.Getenv("SHELL")
	if env == "" {
		return "", errors.Wrap(ErrUnsupportedShell, "SHELL is not set")
	}
	base := filepath.Base(env)
	if s, ok := binaryAliases[base]; ok {
		return s, nil
	}
	return Parse(base)
}

// closest returns the best fuzzy match for name among the supported
// shells, or "" when nothing is close.
func closest(name string) string {
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(name, SupportedNames())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
