// Package paths resolves the on-disk layout of the shtick configuration
// directory.
//
// All shtick state lives in a single directory, resolved by [Default]:
// $SHTICK_CONFIG_DIR when set, otherwise <XDG config home>/shtick
// (~/.config/shtick on Linux). The [Dir] type wraps that root so tests
// can point the whole tool at a temporary directory.
//
// # Layout
//
//	config.toml          group configuration (aliases, env vars, functions)
//	settings.toml        tool settings
//	active_groups        activation state, one group name per line
//	<group>.<shell>      generated fragment for a (group, shell) pair
//	load_active.<shell>  per-shell loader sourcing the active fragments
//	backups/             configuration backups
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base
// Directory Specification compliance. On Linux and macOS, paths follow
// XDG conventions.
package paths
