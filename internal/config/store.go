package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/paths"
	"github.com/thoreinstein/shtick/pkg/fileutil"
)

// groupDoc is the serialized form of a group inside config.toml.
// Empty maps are omitted so hand-edited files stay tidy, but the group
// table itself always survives a round trip, even when empty.
type groupDoc struct {
	Description string            `toml:"description,omitempty"`
	Aliases     map[string]string `toml:"aliases,omitempty"`
	EnvVars     map[string]string `toml:"env_vars,omitempty"`
	Functions   map[string]string `toml:"functions,omitempty"`
}

// Load reads the configuration at path. A missing file yields an empty
// configuration containing only the persistent group, so a first run
// needs no setup. Parse errors and other I/O errors are fatal.
func Load(path string) (*Configuration, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return parse(data, path)
}

// LoadExplicit reads the configuration at a user-supplied path. Unlike
// Load, a missing file is an error.
func LoadExplicit(path string) (*Configuration, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*Configuration, error) {
	var doc map[string]groupDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	cfg := New()
	for name, gd := range doc {
		g := cfg.EnsureGroup(name)
		g.Description = gd.Description
		for k, v := range gd.Aliases {
			g.Aliases[k] = v
		}
		for k, v := range gd.EnvVars {
			g.EnvVars[k] = v
		}
		for k, v := range gd.Functions {
			g.Functions[k] = v
		}
	}
	return cfg, nil
}

// Save writes the configuration to path atomically: serialized to a
// temp file in the same directory, then renamed over the destination.
// A reader never observes a partially written file. The parent
// directory is created if needed.
func Save(cfg *Configuration, path string) error {
	doc := make(map[string]groupDoc, cfg.GroupCount())
	for _, g := range cfg.Groups() {
		doc[g.Name] = groupDoc{
			Description: g.Description,
			Aliases:     g.Aliases,
			EnvVars:     g.EnvVars,
			Functions:   g.Functions,
		}
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return errors.Wrapf(fileutil.AtomicWriteTOML(path, doc), "writing %s", path)
}
