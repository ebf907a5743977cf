package config

import (
	"github.com/cockroachdb/errors"
)

// ItemType identifies the kind of shell customization an item defines.
type ItemType string

// The closed set of item types.
const (
	TypeAlias    ItemType = "alias"
	TypeEnvVar   ItemType = "env"
	TypeFunction ItemType = "function"
)

// ErrUnknownItemType indicates an item type outside the closed set.
var ErrUnknownItemType = errors.New("unknown item type")

// Types returns all item types in rendering order.
func Types() []ItemType {
	return []ItemType{TypeAlias, TypeEnvVar, TypeFunction}
}

// ParseItemType normalizes a user-supplied type name.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "alias", "aliases":
		return TypeAlias, nil
	case "env", "env_var", "env_vars":
		return TypeEnvVar, nil
	case "function", "functions":
		return TypeFunction, nil
	}
	return "", errors.Wrapf(ErrUnknownItemType, "%q (valid: alias, env, function)", s)
}

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case TypeAlias, TypeEnvVar, TypeFunction:
		return true
	}
	return false
}

func (t ItemType) String() string {
	return string(t)
}

// Section returns the configuration table name holding items of this
// type: "aliases", "env_vars", or "functions".
func (t ItemType) Section() string {
	switch t {
	case TypeAlias:
		return "aliases"
	case TypeEnvVar:
		return "env_vars"
	case TypeFunction:
		return "functions"
	}
	return ""
}

// Label returns the human-readable name used in messages.
func (t ItemType) Label() string {
	switch t {
	case TypeAlias:
		return "alias"
	case TypeEnvVar:
		return "environment variable"
	case TypeFunction:
		return "function"
	}
	return string(t)
}

// Item is a single shell customization: an alias, an environment
// variable, or a shell function.
type Item struct {
	Type  ItemType
	Key   string
	Value string
}
