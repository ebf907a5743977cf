// Package backup snapshots the shtick configuration files so edits and
// restores can be undone.
//
// Each backup is a directory under backups/ holding copies of
// config.toml, settings.toml, and active_groups (whichever exist) plus
// a manifest.json with SHA256 hashes for integrity checks on restore.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/paths"
	"github.com/thoreinstein/shtick/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

const backupIDFormat = "20060102T150405"

// Manager creates, lists, restores, and prunes backups under a config
// directory's backups/ subdirectory.
type Manager struct {
	dir            paths.Dir
	retentionCount int

	autoOnce sync.Once
	autoErr  error
}

// Option configures a Manager.
type Option func(*Manager)

// WithRetentionCount sets how many backups Prune keeps by default.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a backup Manager for the given config directory.
func NewManager(dir paths.Dir, opts ...Option) *Manager {
	m := &Manager{
		dir:            dir,
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RetentionCount returns the configured retention bound.
func (m *Manager) RetentionCount() int {
	return m.retentionCount
}

// sources returns the files a backup captures.
func (m *Manager) sources() []string {
	return []string{
		m.dir.ConfigFile(),
		m.dir.SettingsFile(),
		m.dir.ActiveGroupsFile(),
	}
}

// Create snapshots the configuration files into a new backup. An empty
// name derives the ID from the current time; same-second collisions
// get a numeric suffix. A caller-chosen name that already exists is
// ErrBackupExists.
func (m *Manager) Create(name string) (*Manifest, error) {
	id, backupPath, err := m.newBackupPath(name)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, src := range m.sources() {
		info, err := os.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", src)
		}
		if info.IsDir() {
			continue
		}
		if len(files) == 0 {
			if err := os.MkdirAll(backupPath, 0o700); err != nil {
				return nil, errors.Wrap(err, "creating backup directory")
			}
		}
		entry, err := captureFile(src, backupPath)
		if err != nil {
			return nil, errors.Wrapf(err, "backing up %s", src)
		}
		files = append(files, *entry)
	}

	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNothingToBackUp, "in %s", m.dir)
	}

	manifest := &Manifest{
		Version:       ManifestVersion,
		CreatedAt:     time.Now().UTC(),
		Files:         files,
		ShtickVersion: Version,
		ID:            id,
	}
	manifestPath := filepath.Join(backupPath, "manifest.json")
	if err := fileutil.AtomicWriteJSON(manifestPath, manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}
	return manifest, nil
}

// newBackupPath resolves the backup ID and directory, handling name
// collisions.
func (m *Manager) newBackupPath(name string) (string, string, error) {
	if name != "" {
		if filepath.Base(name) != name || name == "." || name == ".." {
			return "", "", errors.Newf("invalid backup name %q", name)
		}
		path := m.backupPath(name)
		if _, err := os.Stat(path); err == nil {
			return "", "", errors.Wrapf(ErrBackupExists, "%q", name)
		}
		return name, path, nil
	}

	base := time.Now().Format(backupIDFormat)
	id := base
	for n := 2; ; n++ {
		path := m.backupPath(id)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return id, path, nil
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// EnsureBackedUp creates at most one automatic backup per Manager,
// for save paths running with backup_on_save enabled. A configuration
// directory with nothing in it yet is not an error.
func (m *Manager) EnsureBackedUp() error {
	m.autoOnce.Do(func() {
		if _, err := m.Create(""); err != nil && !errors.Is(err, ErrNothingToBackUp) {
			m.autoErr = errors.Wrap(err, "creating automatic backup")
		}
	})
	return m.autoErr
}

// List returns every backup, newest first.
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.dir.BackupsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backups directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			// Not a backup directory; skip it.
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		if a.CreatedAt.Before(b.CreatedAt) {
			return 1
		}
		return 0
	})
	return manifests, nil
}

// Get loads the manifest for one backup.
func (m *Manager) Get(id string) (*Manifest, error) {
	if id == "" {
		return nil, errors.New("backup ID is required")
	}

	manifestPath := filepath.Join(m.backupPath(id), "manifest.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %q", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

// Restore copies a backup's files back to their original locations.
// Every file's hash is verified before anything is written, so a
// corrupted backup restores nothing.
func (m *Manager) Restore(id string) error {
	manifest, err := m.Get(id)
	if err != nil {
		return err
	}
	backupPath := m.backupPath(id)

	contents := make(map[string][]byte, len(manifest.Files))
	for _, bf := range manifest.Files {
		src := filepath.Join(backupPath, bf.Name)
		data, err := os.ReadFile(src)
		if err != nil {
			return errors.Wrapf(err, "reading backup file %s", bf.Name)
		}
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != bf.SHA256Hash {
			return errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.Name)
		}
		contents[bf.Name] = data
	}

	for _, bf := range manifest.Files {
		if err := paths.EnsureDir(filepath.Dir(bf.OriginalPath), 0); err != nil {
			return errors.Wrapf(err, "creating directory for %s", bf.OriginalPath)
		}
		if err := fileutil.AtomicWriteFile(bf.OriginalPath, contents[bf.Name], bf.Mode.Perm()); err != nil {
			return errors.Wrapf(err, "restoring %s", bf.OriginalPath)
		}
	}
	return nil
}

// Prune removes backups beyond the newest keep.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		path := m.backupPath(manifests[i].ID)
		if err := os.RemoveAll(path); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

func (m *Manager) backupPath(id string) string {
	return filepath.Join(m.dir.BackupsDir(), id)
}

// captureFile copies src into the backup directory, hashing while
// copying and preserving the source mode.
func captureFile(src, backupPath string) (*File, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat source file")
	}
	mode := info.Mode()

	name := filepath.Base(src)
	dst := filepath.Join(backupPath, name)
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "creating backup file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return nil, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return nil, errors.Wrap(err, "closing backup file")
	}
	if err := os.Chmod(dst, mode.Perm()); err != nil {
		return nil, errors.Wrap(err, "setting permissions")
	}

	return &File{
		OriginalPath: src,
		Name:         name,
		SHA256Hash:   hex.EncodeToString(h.Sum(nil)),
		Mode:         mode,
	}, nil
}
