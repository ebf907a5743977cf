// Package group implements group lifecycle operations on a
// configuration and its active-group tracker.
package group

import (
	"github.com/thoreinstein/shtick/internal/active"
	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/validator"
)

// Manager creates, renames, and removes groups. It keeps the active
// tracker consistent with the configuration; persisting the
// configuration itself is the caller's job.
type Manager struct {
	cfg     *config.Configuration
	tracker *active.Tracker
}

// NewManager returns a manager over cfg and tracker.
func NewManager(cfg *config.Configuration, tracker *active.Tracker) *Manager {
	return &Manager{cfg: cfg, tracker: tracker}
}

// Create adds an empty group. The name must be a valid identifier,
// must not be persistent, and must not collide with an existing group.
func (m *Manager) Create(name, description string) error {
	if name == config.PersistentGroup {
		return errors.Wrap(config.ErrReservedGroup, "persistent always exists")
	}
	if err := validator.ValidateGroupName(name); err != nil {
		return err
	}
	if m.cfg.HasGroup(name) {
		return errors.Wrapf(config.ErrDuplicateGroup, "%q", name)
	}
	g := m.cfg.EnsureGroup(name)
	g.Description = description
	return nil
}

// Rename changes a group's name and migrates its active state in the
// same operation, so an active group stays active under the new name.
func (m *Manager) Rename(oldName, newName string) error {
	if oldName == config.PersistentGroup {
		return errors.Wrap(config.ErrReservedGroup, "persistent cannot be renamed")
	}
	if newName == config.PersistentGroup {
		return errors.Wrap(config.ErrReservedGroup, "cannot rename to persistent")
	}
	if !m.cfg.HasGroup(oldName) {
		return errors.Wrapf(config.ErrNoSuchGroup, "%q", oldName)
	}
	if err := validator.ValidateGroupName(newName); err != nil {
		return err
	}
	if m.cfg.HasGroup(newName) {
		return errors.Wrapf(config.ErrDuplicateGroup, "%q", newName)
	}
	m.cfg.RenameGroup(oldName, newName)
	if err := m.tracker.Rename(oldName, newName); err != nil {
		return errors.Wrap(err, "migrating active state")
	}
	return nil
}

// Remove deletes a group, deactivating it first when active, and
// returns the number of items the removal dropped.
func (m *Manager) Remove(name string) (int, error) {
	count, err := m.RemovePreview(name)
	if err != nil {
		return 0, err
	}
	if _, err := m.tracker.Deactivate(name); err != nil {
		return 0, errors.Wrap(err, "deactivating removed group")
	}
	m.cfg.RemoveGroup(name)
	return count, nil
}

// RemovePreview reports how many items removing the group would drop,
// without mutating anything.
func (m *Manager) RemovePreview(name string) (int, error) {
	if name == config.PersistentGroup {
		return 0, errors.Wrap(config.ErrReservedGroup, "persistent cannot be removed")
	}
	g, ok := m.cfg.Group(name)
	if !ok {
		return 0, errors.Wrapf(config.ErrNoSuchGroup, "%q", name)
	}
	return g.ItemCount(), nil
}
