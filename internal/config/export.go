package config

import (
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/shtick/internal/errors"
)

// ErrUnknownFormat indicates an export format outside ExportFormats.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportFormats lists the encodings Export understands.
func ExportFormats() []string {
	return []string{"json", "toml", "yaml"}
}

// exportDoc mirrors groupDoc with tags for every export encoding, so
// the same section names appear regardless of format.
type exportDoc struct {
	Description string            `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Aliases     map[string]string `toml:"aliases,omitempty" yaml:"aliases,omitempty" json:"aliases,omitempty"`
	EnvVars     map[string]string `toml:"env_vars,omitempty" yaml:"env_vars,omitempty" json:"env_vars,omitempty"`
	Functions   map[string]string `toml:"functions,omitempty" yaml:"functions,omitempty" json:"functions,omitempty"`
}

// Export serializes the configuration in the requested format. TOML
// output round-trips: it can be fed back in as a config file.
func Export(cfg *Configuration, format string) ([]byte, error) {
	doc := make(map[string]exportDoc, cfg.GroupCount())
	for _, g := range cfg.Groups() {
		doc[g.Name] = exportDoc{
			Description: g.Description,
			Aliases:     g.Aliases,
			EnvVars:     g.EnvVars,
			Functions:   g.Functions,
		}
	}

	switch format {
	case "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding json")
		}
		return append(out, '\n'), nil
	case "toml":
		out, err := toml.Marshal(doc)
		return out, errors.Wrap(err, "encoding toml")
	case "yaml", "yml":
		out, err := yaml.Marshal(doc)
		return out, errors.Wrap(err, "encoding yaml")
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q (valid: %s)", format, strings.Join(ExportFormats(), ", "))
	}
}
