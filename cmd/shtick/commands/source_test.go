package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/manager"
	"github.com/thoreinstein/shtick/internal/shell"
)

func TestRunSource(t *testing.T) {
	dir := setupCmdTest(t)

	var out bytes.Buffer
	if err := runSource(&out); !errors.Is(err, manager.ErrLoaderMissing) {
		t.Fatalf("error before generation = %v, want ErrLoaderMissing", err)
	}

	if err := runAdd("alias", "persistent", "gs=git status", &out, strings.NewReader("")); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	out.Reset()
	if err := runSource(&out); err != nil {
		t.Fatalf("runSource() error = %v", err)
	}
	want := ". '" + dir.LoaderFile("bash") + "'\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunSource_ExplicitShell(t *testing.T) {
	setupCmdTest(t)

	origShell := sourceShell
	defer func() { sourceShell = origShell }()

	var out bytes.Buffer
	if err := runAdd("alias", "persistent", "gs=git status", &out, strings.NewReader("")); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	// Only bash artifacts exist; asking for fish finds no loader.
	sourceShell = "fish"
	out.Reset()
	if err := runSource(&out); !errors.Is(err, manager.ErrLoaderMissing) {
		t.Errorf("fish error = %v, want ErrLoaderMissing", err)
	}

	sourceShell = "klingon"
	if err := runSource(&out); !errors.Is(err, shell.ErrUnsupportedShell) {
		t.Errorf("klingon error = %v, want ErrUnsupportedShell", err)
	}
}
