package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// DefaultRetentionCount is how many backups Prune keeps by default.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backup exists for the given ID, or
	// none exist at all.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a backed-up file no longer matches
	// its recorded SHA256 hash.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrBackupExists indicates a named backup would overwrite an
	// existing one.
	ErrBackupExists = errors.New("backup already exists")

	// ErrNothingToBackUp indicates none of the configuration files
	// exist yet.
	ErrNothingToBackUp = errors.New("nothing to back up")
)

// Manifest describes one backup. It is stored as manifest.json inside
// the backup directory.
type Manifest struct {
	// Version is the manifest format version.
	Version int `json:"version"`

	// CreatedAt is when the backup was taken.
	CreatedAt time.Time `json:"created_at"`

	// Files lists every captured file.
	Files []File `json:"files"`

	// ShtickVersion is the shtick build that created the backup.
	ShtickVersion string `json:"shtick_version"`

	// ID is the backup directory name (a timestamp like
	// 20260815T093045, or a user-chosen name). Populated on load, not
	// stored in the JSON.
	ID string `json:"-"`
}

// File records one captured configuration file.
type File struct {
	// OriginalPath is where the file lived when backed up.
	OriginalPath string `json:"original_path"`

	// Name is the file's name inside the backup directory.
	Name string `json:"name"`

	// SHA256Hash is the hex-encoded hash of the contents.
	SHA256Hash string `json:"sha256_hash"`

	// Mode holds the file's permission bits.
	Mode fs.FileMode `json:"mode"`
}
