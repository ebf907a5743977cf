package shell

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/shtick/internal/config"
)

// Dialect holds the rendering and loader syntax for one shell.
type Dialect struct {
	shell Shell

	alias func(key, value string) string
	env   func(key, value string) string
	fn    func(key, value string) string // nil when the shell has no function syntax

	include func(path string) string
	guard   func(group, activeFile, include string) string // nil when no runtime guard exists
}

// Shell returns the dialect's shell.
func (d *Dialect) Shell() Shell {
	return d.shell
}

// Supports reports whether the dialect can express the item type.
func (d *Dialect) Supports(t config.ItemType) bool {
	switch t {
	case config.TypeAlias:
		return d.alias != nil
	case config.TypeEnvVar:
		return d.env != nil
	case config.TypeFunction:
		return d.fn != nil
	}
	return false
}

// Render returns the definition for one item. ok is false when the
// dialect cannot express the item type; the caller records the
// omission instead of failing.
func (d *Dialect) Render(t config.ItemType, key, value string) (string, bool) {
	switch t {
	case config.TypeAlias:
		if d.alias != nil {
			return d.alias(key, value), true
		}
	case config.TypeEnvVar:
		if d.env != nil {
			return d.env(key, value), true
		}
	case config.TypeFunction:
		if d.fn != nil {
			return d.fn(key, value), true
		}
	}
	return "", false
}

// Comment returns text as a single comment line. Every supported shell
// uses hash comments.
func (d *Dialect) Comment(text string) string {
	return "# " + text + "\n"
}

// Include returns the statement sourcing path unconditionally.
func (d *Dialect) Include(path string) string {
	return d.include(path)
}

// CanGuard reports whether the dialect can test group activation when
// the loader runs. Dialects without a runtime guard (parse-time
// includes, no conditional around includes) get loaders that list only
// the groups active at generation time.
func (d *Dialect) CanGuard() bool {
	return d.guard != nil
}

// GuardedInclude returns a block sourcing path only when group is
// listed in activeFile, evaluated by the shell at session start.
func (d *Dialect) GuardedInclude(group, activeFile, path string) string {
	return d.guard(group, activeFile, d.include(path))
}

// Dialect returns the syntax rules for s, or nil for unsupported shells.
func (s Shell) Dialect() *Dialect {
	return dialects[s]
}

// posixQuote wraps s in single quotes, closing and escaping embedded
// single quotes with the '\'' idiom.
func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// doubledQuote wraps s in single quotes, doubling embedded single
// quotes (powershell, elvish, rc, es).
func doubledQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// backslashQuote wraps s in single quotes with backslash escapes
// (fish, xonsh).
func backslashQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}

// nuQuote quotes for nushell: single quotes when possible, double
// quotes with backslash escapes otherwise (nushell single-quoted
// strings have no escape syntax).
func nuQuote(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func posixDialect(s Shell) *Dialect {
	return &Dialect{
		shell: s,
		alias: func(k, v string) string { return fmt.Sprintf("alias %s=%s\n", k, posixQuote(v)) },
		env:   func(k, v string) string { return fmt.Sprintf("export %s=%s\n", k, posixQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("%s() {\n    %s\n}\n", k, v) },
		include: func(p string) string {
			return ". " + posixQuote(p) + "\n"
		},
		guard: func(group, activeFile, include string) string {
			return fmt.Sprintf("if grep -qx '%s' %s 2>/dev/null; then\n    %s\nfi\n",
				group, posixQuote(activeFile), strings.TrimSuffix(include, "\n"))
		},
	}
}

func cshDialect(s Shell) *Dialect {
	return &Dialect{
		shell: s,
		alias: func(k, v string) string { return fmt.Sprintf("alias %s %s\n", k, posixQuote(v)) },
		env:   func(k, v string) string { return fmt.Sprintf("setenv %s %s\n", k, posixQuote(v)) },
		// csh has no function syntax.
		fn: nil,
		include: func(p string) string {
			return "source " + posixQuote(p) + "\n"
		},
		guard: func(group, activeFile, include string) string {
			return fmt.Sprintf("if ( { grep -qx '%s' %s } ) then\n    %s\nendif\n",
				group, posixQuote(activeFile), strings.TrimSuffix(include, "\n"))
		},
	}
}

// dialects is the closed dialect table.
var dialects = map[Shell]*Dialect{
	Bash: posixDialect(Bash),
	Zsh:  posixDialect(Zsh),
	Ksh:  posixDialect(Ksh),
	Mksh: posixDialect(Mksh),
	Yash: posixDialect(Yash),
	Dash: posixDialect(Dash),
	Oil:  posixDialect(Oil),
	Csh:  cshDialect(Csh),
	Tcsh: cshDialect(Tcsh),

	Fish: {
		shell: Fish,
		alias: func(k, v string) string { return fmt.Sprintf("alias %s %s\n", k, backslashQuote(v)) },
		env:   func(k, v string) string { return fmt.Sprintf("set -x %s %s\n", k, backslashQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("function %s\n    %s\nend\n", k, v) },
		include: func(p string) string {
			return "source " + backslashQuote(p) + "\n"
		},
		guard: func(group, activeFile, include string) string {
			return fmt.Sprintf("if grep -qx '%s' %s 2>/dev/null\n    %s\nend\n",
				group, backslashQuote(activeFile), strings.TrimSuffix(include, "\n"))
		},
	},

	Xonsh: {
		shell: Xonsh,
		alias: func(k, v string) string { return fmt.Sprintf("aliases['%s'] = %s\n", k, backslashQuote(v)) },
		env:   func(k, v string) string { return fmt.Sprintf("$%s = %s\n", k, backslashQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("def %s():\n    return %s\n", k, backslashQuote(v)) },
		include: func(p string) string {
			return "source " + backslashQuote(p) + "\n"
		},
		guard: func(group, activeFile, include string) string {
			return fmt.Sprintf("if !(grep -qx '%s' %s):\n    %s\n",
				group, backslashQuote(activeFile), strings.TrimSuffix(include, "\n"))
		},
	},

	Elvish: {
		shell: Elvish,
		alias: func(k, v string) string { return fmt.Sprintf("fn %s { %s }\n", k, v) },
		env:   func(k, v string) string { return fmt.Sprintf("E:%s = %s\n", k, doubledQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("fn %s { %s }\n", k, v) },
		// eval+slurp is elvish's include; no runtime guard around it.
		include: func(p string) string {
			return "eval (slurp < " + doubledQuote(p) + ")\n"
		},
	},

	Rc: {
		shell: Rc,
		alias: func(k, v string) string { return fmt.Sprintf("fn %s { %s }\n", k, v) },
		env:   func(k, v string) string { return fmt.Sprintf("%s=%s\n", k, doubledQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("fn %s { %s }\n", k, v) },
		include: func(p string) string {
			return ". " + doubledQuote(p) + "\n"
		},
	},

	Es: {
		shell: Es,
		alias: func(k, v string) string { return fmt.Sprintf("fn-%s = { %s }\n", k, v) },
		env:   func(k, v string) string { return fmt.Sprintf("%s=%s\n", k, doubledQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("fn-%s = { %s }\n", k, v) },
		include: func(p string) string {
			return ". " + doubledQuote(p) + "\n"
		},
	},

	Nushell: {
		shell: Nushell,
		alias: func(k, v string) string { return fmt.Sprintf("alias %s = %s\n", k, v) },
		env:   func(k, v string) string { return fmt.Sprintf("let-env %s = %s\n", k, nuQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("def %s [] { %s }\n", k, v) },
		// nushell's source is parse-time; it cannot sit behind a
		// runtime condition.
		include: func(p string) string {
			return "source " + nuQuote(p) + "\n"
		},
	},

	Powershell: {
		shell: Powershell,
		alias: func(k, v string) string { return fmt.Sprintf("Set-Alias -Name %s -Value %s\n", k, doubledQuote(v)) },
		env:   func(k, v string) string { return fmt.Sprintf("$env:%s = %s\n", k, doubledQuote(v)) },
		fn:    func(k, v string) string { return fmt.Sprintf("function %s { %s }\n", k, v) },
		include: func(p string) string {
			return ". " + doubledQuote(p) + "\n"
		},
		guard: func(group, activeFile, include string) string {
			return fmt.Sprintf("if ((Get-Content %s -ErrorAction SilentlyContinue) -contains '%s') {\n    %s\n}\n",
				doubledQuote(activeFile), group, strings.TrimSuffix(include, "\n"))
		},
	},
}
