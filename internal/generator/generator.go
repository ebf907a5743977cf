// Package generator projects a configuration into per-group shell
// files plus per-shell loaders, rewriting only files whose content
// changed so repeated runs leave mtimes alone.
package generator

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/shtick/internal/active"
	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/logging"
	"github.com/thoreinstein/shtick/internal/paths"
	"github.com/thoreinstein/shtick/internal/shell"
	"github.com/thoreinstein/shtick/pkg/fileutil"
)

const headerText = "managed by shtick"

// maxConcurrentShells bounds the parallel fan-out; shells own disjoint
// files, so the only synchronization is the final join.
const maxConcurrentShells = 8

// Generator renders shell files under a config directory.
type Generator struct {
	dir    paths.Dir
	logger *slog.Logger
}

// New creates a Generator with a default warning-only logger.
func New(dir paths.Dir) *Generator {
	return &Generator{
		dir: dir,
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})),
	}
}

// NewWithLogger creates a Generator with the given logger.
func NewWithLogger(dir paths.Dir, logger *slog.Logger) *Generator {
	return &Generator{dir: dir, logger: logger}
}

// Options control one generation pass.
type Options struct {
	// Shells is the explicit target list; empty means detect from
	// $SHELL, falling back to every supported dialect.
	Shells []string
	// Parallel fans the per-shell work out across goroutines.
	Parallel bool
}

// Omission records items of a type the target dialect cannot express.
type Omission struct {
	Shell shell.Shell
	Group string
	Type  config.ItemType
	Keys  []string
}

// Result summarizes a generation pass.
type Result struct {
	// Written and Unchanged hold paths of rendered files.
	Written   []string
	Unchanged []string
	// Skipped holds names from the explicit shell list that no dialect
	// matches.
	Skipped   []string
	Omissions []Omission
}

func (r *Result) add(other Result) {
	r.Written = append(r.Written, other.Written...)
	r.Unchanged = append(r.Unchanged, other.Unchanged...)
	r.Omissions = append(r.Omissions, other.Omissions...)
}

// GenerateAll renders every group file and every loader for the target
// shells.
func (g *Generator) GenerateAll(cfg *config.Configuration, tracker *active.Tracker, opts Options) (*Result, error) {
	return g.run(cfg, tracker, opts, false)
}

// GenerateLoaders rerenders only the per-shell loaders. Activation
// changes need nothing else: group files are untouched by them.
func (g *Generator) GenerateLoaders(cfg *config.Configuration, tracker *active.Tracker, opts Options) (*Result, error) {
	return g.run(cfg, tracker, opts, true)
}

func (g *Generator) run(cfg *config.Configuration, tracker *active.Tracker, opts Options, loadersOnly bool) (*Result, error) {
	targets, skipped := g.resolveTargets(opts.Shells)

	activeNames, err := tracker.ActiveGroups()
	if err != nil {
		return nil, errors.Wrap(err, "reading active groups")
	}
	if err := g.dir.Ensure(); err != nil {
		return nil, err
	}

	// Per-index results keep the merge order stable regardless of
	// which goroutine finishes first.
	results := make([]Result, len(targets))
	if opts.Parallel && len(targets) > 1 {
		var eg errgroup.Group
		eg.SetLimit(maxConcurrentShells)
		for i, sh := range targets {
			eg.Go(func() error {
				res, err := g.generateShell(cfg, activeNames, sh, loadersOnly)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, sh := range targets {
			res, err := g.generateShell(cfg, activeNames, sh, loadersOnly)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
	}

	final := &Result{Skipped: skipped}
	for _, res := range results {
		final.add(res)
	}
	return final, nil
}

// resolveTargets picks the shells to generate for: the explicit list
// when set, else the detected $SHELL, else every supported dialect.
// Unsupported names in the explicit list are skipped, not fatal.
func (g *Generator) resolveTargets(explicit []string) ([]shell.Shell, []string) {
	if len(explicit) > 0 {
		targets := make([]shell.Shell, 0, len(explicit))
		var skipped []string
		seen := make(map[shell.Shell]bool)
		for _, name := range explicit {
			sh, err := shell.Parse(name)
			if err != nil {
				g.logger.Warn("skipping unsupported shell", "shell", name)
				skipped = append(skipped, name)
				continue
			}
			if seen[sh] {
				continue
			}
			seen[sh] = true
			targets = append(targets, sh)
		}
		return targets, skipped
	}
	if sh, err := shell.Detect(); err == nil {
		return []shell.Shell{sh}, nil
	}
	return shell.Supported(), nil
}

func (g *Generator) generateShell(cfg *config.Configuration, activeNames []string, sh shell.Shell, loadersOnly bool) (Result, error) {
	var res Result
	d := sh.Dialect()

	if !loadersOnly {
		for _, grp := range cfg.Groups() {
			content, omissions := renderGroup(grp, d)
			res.Omissions = append(res.Omissions, omissions...)

			path := g.dir.GroupFile(grp.Name, sh.String())
			wrote, err := writeIfChanged(path, content)
			if err != nil {
				return res, err
			}
			if wrote {
				g.logger.Debug("wrote group file", "path", path)
				res.Written = append(res.Written, path)
			} else {
				g.logger.Log(context.Background(), logging.LevelTrace, "group file unchanged", "path", path)
				res.Unchanged = append(res.Unchanged, path)
			}
		}
	}

	loader := g.renderLoader(cfg, activeNames, d)
	path := g.dir.LoaderFile(sh.String())
	wrote, err := writeIfChanged(path, loader)
	if err != nil {
		return res, err
	}
	if wrote {
		g.logger.Debug("wrote loader", "path", path)
		res.Written = append(res.Written, path)
	} else {
		g.logger.Log(context.Background(), logging.LevelTrace, "loader unchanged", "path", path)
		res.Unchanged = append(res.Unchanged, path)
	}
	return res, nil
}

// renderGroup returns the artifact bytes for one group in one dialect,
// plus omissions for item types the dialect cannot express.
func renderGroup(grp *config.Group, d *shell.Dialect) ([]byte, []Omission) {
	var buf bytes.Buffer
	buf.WriteString(d.Comment(headerText))
	buf.WriteString(d.Comment("group: " + grp.Name))

	var omissions []Omission
	for _, t := range config.Types() {
		items := grp.Items(t)
		if len(items) == 0 {
			continue
		}
		if !d.Supports(t) {
			keys := make([]string, 0, len(items))
			for _, item := range items {
				keys = append(keys, item.Key)
			}
			omissions = append(omissions, Omission{
				Shell: d.Shell(),
				Group: grp.Name,
				Type:  t,
				Keys:  keys,
			})
			continue
		}
		buf.WriteByte('\n')
		for _, item := range items {
			line, _ := d.Render(t, item.Key, item.Value)
			buf.WriteString(line)
		}
	}
	return buf.Bytes(), omissions
}

// renderLoader builds the per-shell entry point: the persistent group
// sourced unconditionally, then every other group behind a runtime
// activation guard. Dialects without a guard get only the groups
// active right now; activate and deactivate regenerate loaders, so
// those stay current too.
func (g *Generator) renderLoader(cfg *config.Configuration, activeNames []string, d *shell.Dialect) []byte {
	sh := d.Shell()
	var buf bytes.Buffer
	buf.WriteString(d.Comment(headerText))
	buf.WriteString(d.Comment("loads the persistent group plus active groups"))
	buf.WriteByte('\n')
	buf.WriteString(d.Include(g.dir.GroupFile(config.PersistentGroup, sh.String())))

	if d.CanGuard() {
		activeFile := g.dir.ActiveGroupsFile()
		for _, grp := range cfg.RegularGroups() {
			buf.WriteByte('\n')
			buf.WriteString(d.GuardedInclude(grp.Name, activeFile, g.dir.GroupFile(grp.Name, sh.String())))
		}
	} else {
		for _, name := range activeNames {
			if !cfg.HasGroup(name) {
				continue
			}
			buf.WriteString(d.Include(g.dir.GroupFile(name, sh.String())))
		}
	}
	return buf.Bytes()
}

// RemoveGroupArtifacts deletes every <group>.<shell> file so removed
// or renamed groups leave no orphans behind. Every supported shell is
// swept, not just the current targets.
func (g *Generator) RemoveGroupArtifacts(group string) error {
	for _, sh := range shell.Supported() {
		path := g.dir.GroupFile(group, sh.String())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", path)
		}
	}
	return nil
}

// writeIfChanged writes content atomically only when it differs from
// the file's current bytes.
func writeIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "reading %s", path)
	}
	if err := fileutil.AtomicWriteFile(path, content, 0o644); err != nil {
		return false, errors.Wrapf(err, "writing %s", path)
	}
	return true, nil
}
