// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (group, settings, backup).
package flags

import "github.com/thoreinstein/shtick/internal/paths"

// configDir holds the resolved configuration directory for this
// invocation.
var configDir paths.Dir

// GetConfigDir returns the configuration directory commands operate
// on. The root command sets it after parsing --dir.
func GetConfigDir() paths.Dir {
	if configDir == "" {
		return paths.Default()
	}
	return configDir
}

// SetConfigDir sets the configuration directory. This is used by the
// root command after flag parsing, and by tests.
func SetConfigDir(dir paths.Dir) {
	configDir = dir
}
