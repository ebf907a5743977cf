// Package manager wires the configuration store, settings, activation
// tracker, conflict checker, and generator into the operations the CLI
// exposes. Every mutation follows the same sequence: validate, mutate
// in memory, invalidate the conflict cache, save atomically, then
// regenerate artifacts.
package manager

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/thoreinstein/shtick/internal/active"
	"github.com/thoreinstein/shtick/internal/backup"
	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/conflict"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/generator"
	"github.com/thoreinstein/shtick/internal/group"
	"github.com/thoreinstein/shtick/internal/logging"
	"github.com/thoreinstein/shtick/internal/paths"
	"github.com/thoreinstein/shtick/internal/settings"
	"github.com/thoreinstein/shtick/internal/shell"
	"github.com/thoreinstein/shtick/internal/validator"
)

var (
	// ErrItemNotFound indicates a removal target that does not exist
	// in the named group.
	ErrItemNotFound = errors.New("item not found")

	// ErrLoaderMissing indicates a source request for a shell whose
	// loader has not been generated yet.
	ErrLoaderMissing = errors.New("no generated loader for this shell")
)

// Manager owns the loaded configuration and settings for one
// invocation and coordinates mutations across them.
type Manager struct {
	dir      paths.Dir
	cfg      *config.Configuration
	settings *settings.Settings
	tracker  *active.Tracker
	checker  *conflict.Checker
	gen      *generator.Generator
	groups   *group.Manager
	backups  *backup.Manager
	logger   *slog.Logger
}

// New loads the configuration and settings under dir and assembles a
// manager around them, logging only warnings.
func New(dir paths.Dir) (*Manager, error) {
	return NewWithLogger(dir, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(dir paths.Dir, logger *slog.Logger) (*Manager, error) {
	cfg, err := config.Load(dir.ConfigFile())
	if err != nil {
		return nil, err
	}
	sett, err := settings.Load(dir.SettingsFile())
	if err != nil {
		return nil, err
	}
	checker, err := conflict.NewChecker(sett.Performance.CacheSize)
	if err != nil {
		return nil, err
	}
	tracker := active.NewTracker(dir.ActiveGroupsFile())

	return &Manager{
		dir:      dir,
		cfg:      cfg,
		settings: sett,
		tracker:  tracker,
		checker:  checker,
		gen:      generator.NewWithLogger(dir, logger),
		groups:   group.NewManager(cfg, tracker),
		backups:  backup.NewManager(dir),
		logger:   logger,
	}, nil
}

// Dir returns the configuration directory the manager operates on.
func (m *Manager) Dir() paths.Dir {
	return m.dir
}

// Config returns the loaded configuration.
func (m *Manager) Config() *config.Configuration {
	return m.cfg
}

// Settings returns the loaded settings.
func (m *Manager) Settings() *settings.Settings {
	return m.settings
}

// AddResult describes a completed AddItem.
type AddResult struct {
	Item         config.Item
	Group        string
	Replaced     bool
	Previous     string
	CreatedGroup bool
	Warnings     []string
	Generated    *generator.Result
}

// AddWarnings previews the conflict warnings AddItem would report,
// without mutating anything. The CLI uses it to prompt before an
// overwrite. The raw assignment is validated the same way AddItem
// validates it.
func (m *Manager) AddWarnings(t config.ItemType, groupName, raw string) ([]string, error) {
	key, _, err := validator.ParseAssignment(raw)
	if err != nil {
		return nil, err
	}
	if err := m.validateGroupName(groupName); err != nil {
		return nil, err
	}
	if !m.settings.Behavior.CheckConflicts {
		return nil, nil
	}
	return m.checker.Warnings(m.cfg, t, key, groupName), nil
}

// AddItem records a key=value assignment in the named group, creating
// the group on first use, then saves and regenerates. The result
// carries any conflict warnings so callers that skipped AddWarnings
// still see them.
func (m *Manager) AddItem(t config.ItemType, groupName, raw string) (*AddResult, error) {
	key, value, err := validator.ParseAssignment(raw)
	if err != nil {
		return nil, err
	}
	if err := m.validateGroupName(groupName); err != nil {
		return nil, err
	}

	var warnings []string
	if m.settings.Behavior.CheckConflicts {
		warnings = m.checker.Warnings(m.cfg, t, key, groupName)
		stats := m.checker.Stats()
		m.logger.Log(context.Background(), logging.LevelTrace, "conflict cache",
			"hits", stats.Hits, "misses", stats.Misses, "invalidations", stats.Invalidations)
	}

	created := !m.cfg.HasGroup(groupName)
	previous, replaced := m.cfg.Value(groupName, t, key)

	item := config.Item{Type: t, Key: key, Value: value}
	m.cfg.AddItem(groupName, item)
	m.checker.Invalidate()

	gen, err := m.saveAndRegenerate()
	if err != nil {
		return nil, err
	}

	m.logger.Debug("added item",
		"type", t.String(), "group", groupName, "key", key, "replaced", replaced)

	return &AddResult{
		Item:         item,
		Group:        groupName,
		Replaced:     replaced,
		Previous:     previous,
		CreatedGroup: created,
		Warnings:     warnings,
		Generated:    gen,
	}, nil
}

func (m *Manager) validateGroupName(groupName string) error {
	if groupName == config.PersistentGroup {
		return nil
	}
	if err := validator.ValidateGroupName(groupName); err != nil {
		return errors.Wrapf(err, "group %q", groupName)
	}
	return nil
}

// RemoveResult describes a completed RemoveItem.
type RemoveResult struct {
	Item      config.Item
	Group     string
	Generated *generator.Result
}

// RemoveItem deletes the item with the exact key from the named group,
// then saves and regenerates.
func (m *Manager) RemoveItem(t config.ItemType, groupName, key string) (*RemoveResult, error) {
	g, ok := m.cfg.Group(groupName)
	if !ok {
		return nil, errors.Wrapf(config.ErrNoSuchGroup, "%q", groupName)
	}
	value, ok := g.Mapping(t)[key]
	if !ok {
		return nil, errors.Wrapf(ErrItemNotFound, "no %s %q in group %q", t.Label(), key, groupName)
	}

	m.cfg.RemoveItem(groupName, t, key)
	m.checker.Invalidate()

	gen, err := m.saveAndRegenerate()
	if err != nil {
		return nil, err
	}

	m.logger.Debug("removed item", "type", t.String(), "group", groupName, "key", key)

	return &RemoveResult{
		Item:      config.Item{Type: t, Key: key, Value: value},
		Group:     groupName,
		Generated: gen,
	}, nil
}

// FindItems returns items whose key contains substring
// (case-insensitive), optionally narrowed by type and group.
func (m *Manager) FindItems(t config.ItemType, groupName, substring string) []config.Match {
	return m.cfg.FindItems(t, groupName, substring)
}

// Activate marks a group active and regenerates the loaders. Group
// files are untouched, which keeps activation cheap. The returned
// flag is false when the group was already active.
func (m *Manager) Activate(name string) (bool, error) {
	changed, err := m.tracker.Activate(m.cfg, name)
	if err != nil || !changed {
		return false, err
	}
	m.checker.Invalidate()
	if _, err := m.gen.GenerateLoaders(m.cfg, m.tracker, m.genOptions()); err != nil {
		return true, err
	}
	m.logger.Debug("activated group", "group", name)
	return true, nil
}

// Deactivate is the inverse of Activate. Deactivating an inactive or
// unknown group is not an error, so cleanup scripts can call it
// blindly.
func (m *Manager) Deactivate(name string) (bool, error) {
	changed, err := m.tracker.Deactivate(name)
	if err != nil || !changed {
		return false, err
	}
	m.checker.Invalidate()
	if _, err := m.gen.GenerateLoaders(m.cfg, m.tracker, m.genOptions()); err != nil {
		return true, err
	}
	m.logger.Debug("deactivated group", "group", name)
	return true, nil
}

// CreateGroup adds a new empty group and regenerates, so its artifact
// files and loader entries exist immediately.
func (m *Manager) CreateGroup(name, description string) error {
	if err := m.groups.Create(name, description); err != nil {
		return err
	}
	m.checker.Invalidate()
	_, err := m.saveAndRegenerate()
	return err
}

// RenameGroup renames a regular group, migrating items, description,
// activation state, and generated artifacts.
func (m *Manager) RenameGroup(oldName, newName string) error {
	if err := m.groups.Rename(oldName, newName); err != nil {
		return err
	}
	m.checker.Invalidate()
	if _, err := m.saveAndRegenerate(); err != nil {
		return err
	}
	return errors.Wrapf(m.gen.RemoveGroupArtifacts(oldName), "removing artifacts for %q", oldName)
}

// RemoveGroup deletes a group with its items, activation state, and
// generated artifacts, returning the number of items removed.
func (m *Manager) RemoveGroup(name string) (int, error) {
	count, err := m.groups.Remove(name)
	if err != nil {
		return 0, err
	}
	m.checker.Invalidate()
	if _, err := m.saveAndRegenerate(); err != nil {
		return 0, err
	}
	if err := m.gen.RemoveGroupArtifacts(name); err != nil {
		return 0, errors.Wrapf(err, "removing artifacts for %q", name)
	}
	return count, nil
}

// RemoveGroupPreview reports how many items removing the group would
// delete, without removing anything. The CLI confirms with this count.
func (m *Manager) RemoveGroupPreview(name string) (int, error) {
	return m.groups.RemovePreview(name)
}

// Generate regenerates every artifact. When explicitPath is non-empty
// the configuration is read from that file instead of the managed one,
// letting users preview a hand-edited config without adopting it.
func (m *Manager) Generate(explicitPath string) (*generator.Result, error) {
	cfg := m.cfg
	if explicitPath != "" {
		loaded, err := config.LoadExplicit(explicitPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return m.gen.GenerateAll(cfg, m.tracker, m.genOptions())
}

// SourceCommand returns the line a user can eval to load shtick into
// the current session. The loader must have been generated first.
func (m *Manager) SourceCommand(shellName string) (string, error) {
	var sh shell.Shell
	var err error
	if shellName != "" {
		sh, err = shell.Parse(shellName)
	} else {
		sh, err = shell.Detect()
	}
	if err != nil {
		return "", err
	}

	loader := m.dir.LoaderFile(sh.String())
	if _, err := os.Stat(loader); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrLoaderMissing, "%s (run 'shtick generate' first)", sh)
		}
		return "", errors.Wrapf(err, "checking loader for %s", sh)
	}
	return strings.TrimSuffix(sh.Dialect().Include(loader), "\n"), nil
}

// Status summarizes the installation for the status command.
type Status struct {
	ConfigPath      string   `json:"config_path"`
	CurrentShell    string   `json:"current_shell"`
	LoaderExists    bool     `json:"loader_exists"`
	PersistentItems int      `json:"persistent_items"`
	TotalGroups     int      `json:"total_groups"`
	ActiveGroups    []string `json:"active_groups"`
	AvailableGroups []string `json:"available_groups"`
}

// Status reports the current shell, loader presence, and group
// inventory. Detection failures leave CurrentShell empty rather than
// erroring, so status works in cron jobs and editors too.
func (m *Manager) Status() *Status {
	st := &Status{
		ConfigPath:      m.dir.ConfigFile(),
		TotalGroups:     m.cfg.GroupCount(),
		ActiveGroups:    []string{},
		AvailableGroups: []string{},
	}
	if sh, err := shell.Detect(); err == nil {
		st.CurrentShell = sh.String()
		if _, err := os.Stat(m.dir.LoaderFile(sh.String())); err == nil {
			st.LoaderExists = true
		}
	}
	if g, ok := m.cfg.Group(config.PersistentGroup); ok {
		st.PersistentItems = g.ItemCount()
	}
	if names, err := m.tracker.ActiveGroups(); err == nil {
		st.ActiveGroups = names
	}
	for _, g := range m.cfg.RegularGroups() {
		st.AvailableGroups = append(st.AvailableGroups, g.Name)
	}
	return st
}

// ListedItem is one row of the list command.
type ListedItem struct {
	Group  string `json:"group"`
	Type   string `json:"type"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Active bool   `json:"active"`
}

// ListItems returns every item, or the items of one group when
// groupName is non-empty. Rows follow group order (persistent first),
// then type, then key. Active reports whether the owning group's
// definitions load in new sessions.
func (m *Manager) ListItems(groupName string) ([]ListedItem, error) {
	if groupName != "" && !m.cfg.HasGroup(groupName) {
		return nil, errors.Wrapf(config.ErrNoSuchGroup, "%q", groupName)
	}
	matches := m.cfg.FindItems("", groupName, "")

	items := make([]ListedItem, 0, len(matches))
	for _, match := range matches {
		items = append(items, ListedItem{
			Group:  match.Group,
			Type:   match.Item.Type.String(),
			Key:    match.Item.Key,
			Value:  match.Item.Value,
			Active: m.tracker.IsActive(match.Group),
		})
	}
	return items, nil
}

// Export serializes the configuration to the requested format. With
// activeOnly set, only the persistent group and currently active
// groups are included.
func (m *Manager) Export(format string, activeOnly bool) ([]byte, error) {
	cfg := m.cfg
	if activeOnly {
		filtered := config.New()
		for _, g := range m.cfg.Groups() {
			if g.Name != config.PersistentGroup && !m.tracker.IsActive(g.Name) {
				continue
			}
			fg := filtered.EnsureGroup(g.Name)
			fg.Description = g.Description
			for _, item := range g.AllItems() {
				filtered.AddItem(g.Name, item)
			}
		}
		cfg = filtered
	}
	return config.Export(cfg, format)
}

func (m *Manager) genOptions() generator.Options {
	return generator.Options{
		Shells:   m.settings.Generation.Shells,
		Parallel: m.settings.Generation.Parallel,
	}
}

// saveAndRegenerate persists the configuration and rebuilds all
// artifacts. With backup_on_save set, the first save of the
// invocation snapshots the previous state.
func (m *Manager) saveAndRegenerate() (*generator.Result, error) {
	if m.settings.Behavior.BackupOnSave {
		if err := m.backups.EnsureBackedUp(); err != nil {
			return nil, err
		}
	}
	if err := config.Save(m.cfg, m.dir.ConfigFile()); err != nil {
		return nil, err
	}
	return m.gen.GenerateAll(m.cfg, m.tracker, m.genOptions())
}
