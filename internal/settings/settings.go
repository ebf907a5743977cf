// Package settings loads, mutates, and persists shtick preferences.
//
// Settings live in settings.toml beside the configuration. Every knob
// has a default, so a missing file is never an error, and SHTICK_
// environment variables override the file for one-off runs.
package settings

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/paths"
	"github.com/thoreinstein/shtick/internal/shell"
	"github.com/thoreinstein/shtick/pkg/fileutil"
)

var (
	// ErrUnknownKey indicates a settings key outside the enumerated set.
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrInvalidValue indicates a value that does not parse as the
	// key's declared type or violates its bounds.
	ErrInvalidValue = errors.New("invalid settings value")
	// ErrExists indicates Init would overwrite an existing file.
	ErrExists = errors.New("settings file already exists")
)

// Settings holds every tunable preference, grouped the way the
// settings file lays them out.
type Settings struct {
	Generation  Generation  `mapstructure:"generation" toml:"generation"`
	Behavior    Behavior    `mapstructure:"behavior" toml:"behavior"`
	Performance Performance `mapstructure:"performance" toml:"performance"`
}

// Generation controls which shell files generation produces and how.
type Generation struct {
	// Shells limits generation to the named dialects. Empty means
	// detect from $SHELL, falling back to every supported dialect.
	Shells   []string `mapstructure:"shells" toml:"shells"`
	Parallel bool     `mapstructure:"parallel" toml:"parallel"`
}

// Behavior controls prompting and safety features.
type Behavior struct {
	AutoSourcePrompt bool `mapstructure:"auto_source_prompt" toml:"auto_source_prompt"`
	CheckConflicts   bool `mapstructure:"check_conflicts" toml:"check_conflicts"`
	BackupOnSave     bool `mapstructure:"backup_on_save" toml:"backup_on_save"`
	InteractiveMode  bool `mapstructure:"interactive_mode" toml:"interactive_mode"`
}

// Performance bounds the caches.
type Performance struct {
	CacheSize int `mapstructure:"cache_size" toml:"cache_size"`
}

// Default returns settings with every knob at its default value.
func Default() *Settings {
	return &Settings{
		Generation: Generation{Shells: []string{}},
		Behavior: Behavior{
			AutoSourcePrompt: true,
			CheckConflicts:   true,
			InteractiveMode:  true,
		},
		Performance: Performance{CacheSize: 128},
	}
}

// Load reads settings from path. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix("SHTICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("generation.shells", []string{})
	v.SetDefault("generation.parallel", false)
	v.SetDefault("behavior.auto_source_prompt", true)
	v.SetDefault("behavior.check_conflicts", true)
	v.SetDefault("behavior.backup_on_save", false)
	v.SetDefault("behavior.interactive_mode", true)
	v.SetDefault("performance.cache_size", 128)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return &s, nil
}

// Save writes the settings to path atomically.
func Save(s *Settings, path string) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteTOML(path, s); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Validate checks the constraints the field types cannot express.
func (s *Settings) Validate() error {
	if s.Performance.CacheSize < 1 {
		return errors.Wrapf(ErrInvalidValue,
			"performance.cache_size must be at least 1, got %d", s.Performance.CacheSize)
	}
	for _, name := range s.Generation.Shells {
		if _, err := shell.Parse(name); err != nil {
			return errors.Wrap(err, "generation.shells")
		}
	}
	return nil
}

// Keys returns every valid settings key path, sorted.
func Keys() []string {
	return []string{
		"behavior.auto_source_prompt",
		"behavior.backup_on_save",
		"behavior.check_conflicts",
		"behavior.interactive_mode",
		"generation.parallel",
		"generation.shells",
		"performance.cache_size",
	}
}

// Get returns the value at key rendered as a string.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "generation.shells":
		return strings.Join(s.Generation.Shells, ","), nil
	case "generation.parallel":
		return strconv.FormatBool(s.Generation.Parallel), nil
	case "behavior.auto_source_prompt":
		return strconv.FormatBool(s.Behavior.AutoSourcePrompt), nil
	case "behavior.check_conflicts":
		return strconv.FormatBool(s.Behavior.CheckConflicts), nil
	case "behavior.backup_on_save":
		return strconv.FormatBool(s.Behavior.BackupOnSave), nil
	case "behavior.interactive_mode":
		return strconv.FormatBool(s.Behavior.InteractiveMode), nil
	case "performance.cache_size":
		return strconv.Itoa(s.Performance.CacheSize), nil
	}
	return "", unknownKey(key)
}

// Set parses raw according to the key's declared type and stores it.
func (s *Settings) Set(key, raw string) error {
	switch key {
	case "generation.shells":
		shells, err := parseShellList(raw)
		if err != nil {
			return err
		}
		s.Generation.Shells = shells
		return nil
	case "generation.parallel":
		return setBool(&s.Generation.Parallel, key, raw)
	case "behavior.auto_source_prompt":
		return setBool(&s.Behavior.AutoSourcePrompt, key, raw)
	case "behavior.check_conflicts":
		return setBool(&s.Behavior.CheckConflicts, key, raw)
	case "behavior.backup_on_save":
		return setBool(&s.Behavior.BackupOnSave, key, raw)
	case "behavior.interactive_mode":
		return setBool(&s.Behavior.InteractiveMode, key, raw)
	case "performance.cache_size":
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return errors.Wrapf(ErrInvalidValue, "%s: %q is not an integer", key, raw)
		}
		if n < 1 {
			return errors.Wrapf(ErrInvalidValue, "%s must be at least 1, got %d", key, n)
		}
		s.Performance.CacheSize = n
		return nil
	}
	return unknownKey(key)
}

// Init writes the commented default settings file. An existing file is
// left alone unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrapf(ErrExists, "%s", path)
		}
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteFile(path, []byte(defaultFileContent), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func setBool(dst *bool, key, raw string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return errors.Wrapf(ErrInvalidValue, "%s: %q is not a boolean", key, raw)
	}
	*dst = b
	return nil
}

func parseShellList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	parts := strings.Split(raw, ",")
	shells := make([]string, 0, len(parts))
	for _, part := range parts {
		sh, err := shell.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrap(err, "generation.shells")
		}
		shells = append(shells, sh.String())
	}
	return shells, nil
}

func unknownKey(key string) error {
	return errors.Wrapf(ErrUnknownKey, "%q (valid: %s)", key, strings.Join(Keys(), ", "))
}

const defaultFileContent = `# shtick settings
# Controls generation targets, prompting, and cache sizing.

[generation]
# Shells to generate files for. Empty = detect from $SHELL.
shells = []
# Generate per-shell files concurrently.
parallel = false

[behavior]
# Offer to source regenerated files in the current session.
auto_source_prompt = true
# Warn when an added key already exists elsewhere.
check_conflicts = true
# Snapshot configuration files before each save.
backup_on_save = false
# Allow prompts and interactive pickers.
interactive_mode = true

[performance]
# Bound on the conflict-lookup cache.
cache_size = 128
`
