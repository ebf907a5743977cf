// Package active tracks which groups are activated, persisted as a
// newline-delimited file that generated loaders test at session start.
package active

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/paths"
	"github.com/thoreinstein/shtick/pkg/fileutil"
)

// Tracker holds the active-group set backed by a file on disk. It is
// constructed per invocation and reloads when the file changes under
// it, so concurrent shtick processes converge on the file's contents.
type Tracker struct {
	path    string
	groups  map[string]struct{}
	loaded  bool
	modTime time.Time
}

// NewTracker returns a tracker backed by the file at path. The file is
// read lazily on first use.
func NewTracker(path string) *Tracker {
	return &Tracker{
		path:   path,
		groups: make(map[string]struct{}),
	}
}

// Path returns the backing file path.
func (t *Tracker) Path() string {
	return t.path
}

// Activate marks a group active. It reports whether the set changed:
// activating an already-active group is an idempotent success.
// Activating persistent fails with ErrReservedGroup; activating an
// undefined group fails with ErrNoSuchGroup.
func (t *Tracker) Activate(cfg *config.Configuration, name string) (bool, error) {
	if name == config.PersistentGroup {
		return false, errors.Wrap(config.ErrReservedGroup, "persistent is always active")
	}
	if !cfg.HasGroup(name) {
		return false, errors.Wrapf(config.ErrNoSuchGroup, "%q", name)
	}
	if err := t.ensureFresh(); err != nil {
		return false, err
	}
	if _, ok := t.groups[name]; ok {
		return false, nil
	}
	t.groups[name] = struct{}{}
	return true, t.save()
}

// Deactivate removes a group from the active set. It reports whether
// the group was active; deactivating an inactive or undefined group is
// a success no-op. Deactivating persistent fails with ErrReservedGroup.
func (t *Tracker) Deactivate(name string) (bool, error) {
	if name == config.PersistentGroup {
		return false, errors.Wrap(config.ErrReservedGroup, "persistent cannot be deactivated")
	}
	if err := t.ensureFresh(); err != nil {
		return false, err
	}
	if _, ok := t.groups[name]; !ok {
		return false, nil
	}
	delete(t.groups, name)
	return true, t.save()
}

// IsActive reports whether a group is active. The persistent group is
// always active. When the backing file cannot be read the last loaded
// state answers.
func (t *Tracker) IsActive(name string) bool {
	if name == config.PersistentGroup {
		return true
	}
	_ = t.ensureFresh()
	_, ok := t.groups[name]
	return ok
}

// ActiveGroups returns a sorted copy of the active set, excluding the
// implicit persistent group.
func (t *Tracker) ActiveGroups() ([]string, error) {
	if err := t.ensureFresh(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Rename migrates an active group's membership to its new name. A
// rename of an inactive group is a no-op.
func (t *Tracker) Rename(oldName, newName string) error {
	if err := t.ensureFresh(); err != nil {
		return err
	}
	if _, ok := t.groups[oldName]; !ok {
		return nil
	}
	delete(t.groups, oldName)
	t.groups[newName] = struct{}{}
	return t.save()
}

// ensureFresh loads the file on first use and reloads when the on-disk
// mtime is newer than the last load.
func (t *Tracker) ensureFresh() error {
	info, err := os.Stat(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No file means nothing active; forget any stale state.
			t.groups = make(map[string]struct{})
			t.loaded = true
			t.modTime = time.Time{}
			return nil
		}
		return errors.Wrapf(err, "stating %s", t.path)
	}
	if t.loaded && !info.ModTime().After(t.modTime) {
		return nil
	}
	return t.load(info.ModTime())
}

func (t *Tracker) load(modTime time.Time) error {
	data, err := fileutil.ReadFileWithLimit(t.path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", t.path)
	}

	groups := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		groups[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scanning %s", t.path)
	}

	t.groups = groups
	t.loaded = true
	t.modTime = modTime
	return nil
}

// save writes the set sorted, one name per line with a trailing
// newline, atomically.
func (t *Tracker) save() error {
	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}

	if err := paths.EnsureDir(filepath.Dir(t.path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteFile(t.path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", t.path)
	}

	if info, err := os.Stat(t.path); err == nil {
		t.modTime = info.ModTime()
	}
	t.loaded = true
	return nil
}
