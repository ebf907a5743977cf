package group

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
	"github.com/thoreinstein/shtick/internal/paths"
)

func setupTest(t *testing.T) paths.Dir {
	t.Helper()
	t.Setenv("SHELL", "/bin/bash")
	dir := paths.Dir(t.TempDir())
	flags.SetConfigDir(dir)
	t.Cleanup(func() { flags.SetConfigDir("") })
	return dir
}

func TestRunCreate(t *testing.T) {
	dir := setupTest(t)

	var out bytes.Buffer
	require.NoError(t, runCreateWithWriter("work", &out))
	require.Contains(t, out.String(), `Created group "work"`)

	// Creation regenerates, so the empty group artifact exists already.
	require.FileExists(t, dir.GroupFile("work", "bash"))

	data, err := os.ReadFile(dir.ConfigFile())
	require.NoError(t, err)
	require.Contains(t, string(data), "[work]")
}

func TestRunCreate_WithDescription(t *testing.T) {
	dir := setupTest(t)

	origDesc := createDescription
	defer func() { createDescription = origDesc }()
	createDescription = "Client X contract"

	var out bytes.Buffer
	require.NoError(t, runCreateWithWriter("clientx", &out))

	data, err := os.ReadFile(dir.ConfigFile())
	require.NoError(t, err)
	require.Contains(t, string(data), "Client X contract")
}

func TestRunCreate_Errors(t *testing.T) {
	setupTest(t)

	var out bytes.Buffer
	require.NoError(t, runCreateWithWriter("work", &out))

	err := runCreateWithWriter("work", &out)
	require.ErrorIs(t, err, config.ErrDuplicateGroup)

	err = runCreateWithWriter("persistent", &out)
	require.ErrorIs(t, err, config.ErrReservedGroup)

	err = runCreateWithWriter("my group", &out)
	require.Error(t, err)
}

func TestRunRename(t *testing.T) {
	dir := setupTest(t)

	var out bytes.Buffer
	require.NoError(t, runCreateWithWriter("work", &out))

	m, err := newManager()
	require.NoError(t, err)
	_, err = m.AddItem(config.TypeAlias, "work", "gs=git status")
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, runRenameWithWriter("work", "dayjob", &out))
	require.Contains(t, out.String(), `Renamed group "work" to "dayjob"`)

	require.NoFileExists(t, dir.GroupFile("work", "bash"))

	data, err := os.ReadFile(dir.GroupFile("dayjob", "bash"))
	require.NoError(t, err)
	require.Contains(t, string(data), "alias gs='git status'")
}

func TestRunRename_Errors(t *testing.T) {
	setupTest(t)

	var out bytes.Buffer
	err := runRenameWithWriter("ghost", "other", &out)
	require.ErrorIs(t, err, config.ErrNoSuchGroup)

	err = runRenameWithWriter("persistent", "other", &out)
	require.ErrorIs(t, err, config.ErrReservedGroup)
}

func TestRunRemove_Force(t *testing.T) {
	dir := setupTest(t)

	origForce := removeForce
	defer func() { removeForce = origForce }()
	removeForce = true

	var out bytes.Buffer
	require.NoError(t, runCreateWithWriter("work", &out))

	m, err := newManager()
	require.NoError(t, err)
	_, err = m.AddItem(config.TypeAlias, "work", "gs=git status")
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, runRemoveWithIO("work", &out, strings.NewReader("")))
	require.Contains(t, out.String(), `Removed group "work" (1 item(s))`)
	require.NoFileExists(t, dir.GroupFile("work", "bash"))
}

func TestRunRemove_ConfirmAccept(t *testing.T) {
	setupTest(t)

	var out bytes.Buffer
	require.NoError(t, runCreateWithWriter("work", &out))

	out.Reset()
	require.NoError(t, runRemoveWithIO("work", &out, strings.NewReader("y\n")))
	require.Contains(t, out.String(), `Remove group "work" and its 0 item(s)?`)
	require.Contains(t, out.String(), `Removed group "work"`)
}

func TestRunRemove_ConfirmDecline(t *testing.T) {
	dir := setupTest(t)

	var out bytes.Buffer
	require.NoError(t, runCreateWithWriter("work", &out))

	out.Reset()
	err := runRemoveWithIO("work", &out, strings.NewReader("n\n"))

	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, errors.ExitSystem, exitErr.Code)

	// Nothing was removed.
	data, readErr := os.ReadFile(dir.ConfigFile())
	require.NoError(t, readErr)
	require.Contains(t, string(data), "[work]")
}

func TestRunRemove_Unknown(t *testing.T) {
	setupTest(t)

	origForce := removeForce
	defer func() { removeForce = origForce }()
	removeForce = true

	var out bytes.Buffer
	err := runRemoveWithIO("ghost", &out, strings.NewReader(""))
	require.ErrorIs(t, err, config.ErrNoSuchGroup)
}
