package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// EnvConfigDir overrides the configuration directory when set.
const EnvConfigDir = "SHTICK_CONFIG_DIR"

// appDir is the directory name under the XDG config home.
const appDir = "shtick"

// File names inside the configuration directory.
const (
	ConfigFileName       = "config.toml"
	SettingsFileName     = "settings.toml"
	ActiveGroupsFileName = "active_groups"
	LoaderFilePrefix     = "load_active"
	BackupsDirName       = "backups"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Dir is the root directory holding all shtick state: the group
// configuration, tool settings, activation state, generated shell
// fragments, loaders, and backups.
type Dir string

// Default resolves the shtick configuration directory.
// Precedence: $SHTICK_CONFIG_DIR if set, otherwise <XDG config home>/shtick
// (~/.config/shtick on Linux).
func Default() Dir {
	if custom := os.Getenv(EnvConfigDir); custom != "" {
		return Dir(custom)
	}
	return Dir(filepath.Join(xdg.ConfigHome, appDir))
}

func (d Dir) String() string {
	return string(d)
}

// ConfigFile returns the path of the group configuration file.
func (d Dir) ConfigFile() string {
	return filepath.Join(string(d), ConfigFileName)
}

// SettingsFile returns the path of the tool settings file.
func (d Dir) SettingsFile() string {
	return filepath.Join(string(d), SettingsFileName)
}

// ActiveGroupsFile returns the path of the activation state file.
func (d Dir) ActiveGroupsFile() string {
	return filepath.Join(string(d), ActiveGroupsFileName)
}

// GroupFile returns the generated fragment path for a (group, shell) pair,
// e.g. work.zsh for group "work" under zsh.
func (d Dir) GroupFile(group, shell string) string {
	return filepath.Join(string(d), group+"."+shell)
}

// LoaderFile returns the per-shell loader script path,
// e.g. load_active.bash for bash.
func (d Dir) LoaderFile(shell string) string {
	return filepath.Join(string(d), LoaderFilePrefix+"."+shell)
}

// BackupsDir returns the directory holding configuration backups.
func (d Dir) BackupsDir() string {
	return filepath.Join(string(d), BackupsDirName)
}

// Ensure creates the configuration directory with private permissions.
// It is idempotent.
func (d Dir) Ensure() error {
	return EnsureDir(string(d), 0)
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// Abbreviate replaces a leading home directory component with "~" for
// display. Paths outside the home directory are returned unchanged.
func Abbreviate(path string) string {
	home := Home()
	if home == "" || path == "" {
		return path
	}
	if path == home {
		return "~"
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.Join("~", rel)
}
