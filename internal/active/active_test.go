package active

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
)

func testConfig(groups ...string) *config.Configuration {
	cfg := config.New()
	for _, name := range groups {
		cfg.EnsureGroup(name)
	}
	return cfg
}

func trackerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "active_groups")
}

func TestActivate(t *testing.T) {
	path := trackerPath(t)
	tr := NewTracker(path)
	cfg := testConfig("work", "docker")

	changed, err := tr.Activate(cfg, "work")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !changed {
		t.Error("Activate() changed = false, want true")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading tracker file: %v", err)
	}
	if string(data) != "work\n" {
		t.Errorf("file = %q, want %q", data, "work\n")
	}
}

func TestActivate_Idempotent(t *testing.T) {
	tr := NewTracker(trackerPath(t))
	cfg := testConfig("work")

	if _, err := tr.Activate(cfg, "work"); err != nil {
		t.Fatalf("first Activate() error = %v", err)
	}
	changed, err := tr.Activate(cfg, "work")
	if err != nil {
		t.Fatalf("second Activate() error = %v", err)
	}
	if changed {
		t.Error("second Activate() changed = true, want false")
	}
}

func TestActivate_Persistent(t *testing.T) {
	tr := NewTracker(trackerPath(t))

	_, err := tr.Activate(testConfig(), config.PersistentGroup)
	if !errors.Is(err, config.ErrReservedGroup) {
		t.Errorf("Activate(persistent) error = %v, want ErrReservedGroup", err)
	}
}

func TestActivate_NoSuchGroup(t *testing.T) {
	tr := NewTracker(trackerPath(t))

	_, err := tr.Activate(testConfig("work"), "missing")
	if !errors.Is(err, config.ErrNoSuchGroup) {
		t.Errorf("Activate(missing) error = %v, want ErrNoSuchGroup", err)
	}
}

func TestActivate_SortedPersistence(t *testing.T) {
	path := trackerPath(t)
	tr := NewTracker(path)
	cfg := testConfig("zeta", "alpha", "mid")

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := tr.Activate(cfg, name); err != nil {
			t.Fatalf("Activate(%q) error = %v", name, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading tracker file: %v", err)
	}
	want := "alpha\nmid\nzeta\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestDeactivate(t *testing.T) {
	path := trackerPath(t)
	tr := NewTracker(path)
	cfg := testConfig("work", "docker")

	for _, name := range []string{"work", "docker"} {
		if _, err := tr.Activate(cfg, name); err != nil {
			t.Fatalf("Activate(%q) error = %v", name, err)
		}
	}

	changed, err := tr.Deactivate("work")
	if err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if !changed {
		t.Error("Deactivate() changed = false, want true")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading tracker file: %v", err)
	}
	if string(data) != "docker\n" {
		t.Errorf("file = %q, want %q", data, "docker\n")
	}
}

func TestDeactivate_Inactive(t *testing.T) {
	tr := NewTracker(trackerPath(t))

	changed, err := tr.Deactivate("never-activated")
	if err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if changed {
		t.Error("Deactivate() changed = true, want false")
	}
}

func TestDeactivate_Persistent(t *testing.T) {
	tr := NewTracker(trackerPath(t))

	_, err := tr.Deactivate(config.PersistentGroup)
	if !errors.Is(err, config.ErrReservedGroup) {
		t.Errorf("Deactivate(persistent) error = %v, want ErrReservedGroup", err)
	}
}

func TestIsActive(t *testing.T) {
	tr := NewTracker(trackerPath(t))
	cfg := testConfig("work")

	if tr.IsActive("work") {
		t.Error("IsActive(work) = true before activation")
	}
	if _, err := tr.Activate(cfg, "work"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !tr.IsActive("work") {
		t.Error("IsActive(work) = false after activation")
	}
}

func TestIsActive_PersistentAlways(t *testing.T) {
	tr := NewTracker(trackerPath(t))

	if !tr.IsActive(config.PersistentGroup) {
		t.Error("IsActive(persistent) = false, want true")
	}
}

func TestIsActive_ReloadsAfterExternalChange(t *testing.T) {
	path := trackerPath(t)
	tr := NewTracker(path)
	cfg := testConfig("work", "docker")

	if _, err := tr.Activate(cfg, "work"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if tr.IsActive("docker") {
		t.Fatal("IsActive(docker) = true before external change")
	}

	// Another process activates docker behind our back.
	if err := os.WriteFile(path, []byte("docker\nwork\n"), 0o644); err != nil {
		t.Fatalf("rewriting tracker file: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("bumping mtime: %v", err)
	}

	if !tr.IsActive("docker") {
		t.Error("IsActive(docker) = false after external change")
	}
}

func TestIsActive_ForgetsDeletedFile(t *testing.T) {
	path := trackerPath(t)
	tr := NewTracker(path)
	cfg := testConfig("work")

	if _, err := tr.Activate(cfg, "work"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing tracker file: %v", err)
	}

	if tr.IsActive("work") {
		t.Error("IsActive(work) = true after file removal")
	}
}

func TestActiveGroups(t *testing.T) {
	tr := NewTracker(trackerPath(t))
	cfg := testConfig("zeta", "alpha")

	for _, name := range []string{"zeta", "alpha"} {
		if _, err := tr.Activate(cfg, name); err != nil {
			t.Fatalf("Activate(%q) error = %v", name, err)
		}
	}

	got, err := tr.ActiveGroups()
	if err != nil {
		t.Fatalf("ActiveGroups() error = %v", err)
	}
	want := []string{"alpha", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("ActiveGroups() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ActiveGroups()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestActiveGroups_MissingFile(t *testing.T) {
	tr := NewTracker(trackerPath(t))

	got, err := tr.ActiveGroups()
	if err != nil {
		t.Fatalf("ActiveGroups() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ActiveGroups() = %v, want empty", got)
	}
}

func TestRename(t *testing.T) {
	path := trackerPath(t)
	tr := NewTracker(path)
	cfg := testConfig("work")

	if _, err := tr.Activate(cfg, "work"); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if err := tr.Rename("work", "office"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	if tr.IsActive("work") {
		t.Error("IsActive(work) = true after rename")
	}
	if !tr.IsActive("office") {
		t.Error("IsActive(office) = false after rename")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading tracker file: %v", err)
	}
	if string(data) != "office\n" {
		t.Errorf("file = %q, want %q", data, "office\n")
	}
}

func TestRename_InactiveGroup(t *testing.T) {
	path := trackerPath(t)
	tr := NewTracker(path)

	if err := tr.Rename("work", "office"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Rename() of inactive group created the tracker file")
	}
}

func TestLoad_IgnoresBlankLines(t *testing.T) {
	path := trackerPath(t)
	if err := os.WriteFile(path, []byte("work\n\n  \ndocker\n"), 0o644); err != nil {
		t.Fatalf("writing tracker file: %v", err)
	}

	tr := NewTracker(path)
	got, err := tr.ActiveGroups()
	if err != nil {
		t.Fatalf("ActiveGroups() error = %v", err)
	}
	if len(got) != 2 || got[0] != "docker" || got[1] != "work" {
		t.Errorf("ActiveGroups() = %v, want [docker work]", got)
	}
}
