package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/ladder-league/internal/platform/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	chdir(t, dir)
	for _, key := range []string{"APP_ENV", "LADDER_SAVE_DIR", "LADDER_STORE", "LADDER_SQLITE_PATH", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCommand(id.FixedGenerator{ID: "abcdef"})
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := Execute(context.Background(), root)
	return stdout.String(), stderr.String(), err
}

func TestRoot_RunsInteractiveSession(t *testing.T) {
	dir := isolateEnv(t)
	saveDir := filepath.Join(dir, "games")

	script := "add player Player1\nadd player Player2\nrecord win Player2 Player1\nwinner\nquit\n"
	stdout, _, err := run(t, script, "--save-dir", saveDir, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "Player2\n", stdout)

	raw, err := os.ReadFile(filepath.Join(saveDir, "abcdef.json"))
	require.NoError(t, err)
	assert.Equal(t, `[["Player2"],["Player1"]]`, string(raw))
}

func TestRoot_LoadFlag(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "file.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["Player2"],["Player1"]]`), 0o644))

	stdout, _, err := run(t, "winner\n", "--load", path, "--store", "file")
	require.NoError(t, err)
	assert.Equal(t, "Player2\n", stdout)

	_, _, err = run(t, "", "--load", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Equal(t, "Could not load file from "+filepath.Join(dir, "missing.json"), err.Error())
}

func TestRoot_LogsToStderr(t *testing.T) {
	isolateEnv(t)

	stdout, stderr, err := run(t, "print\n", "--store", "memory", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "No players yet\n", stdout)
	assert.Contains(t, stderr, `"msg":"command start"`)
	assert.Contains(t, stderr, `"league_id":"abcdef"`)
}

func TestRoot_RejectsUnknownStore(t *testing.T) {
	isolateEnv(t)

	_, _, err := run(t, "", "--store", "cassette")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LADDER_STORE")
}

func TestPrintCommand(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "file.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["Player2"],["Player1"]]`), 0o644))

	stdout, _, err := run(t, "", "print", path)
	require.NoError(t, err)
	assert.Equal(t, "          -------------------\n"+
		"          |     Player2     |\n"+
		"          -------------------\n"+
		"------------------- -------------------\n"+
		"|     Player1     | |                 |\n"+
		"------------------- -------------------\n", stdout)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("nope"), 0o644))
	_, _, err = run(t, "", "print", broken)
	require.Error(t, err)
	assert.Equal(t, "File is not valid JSON: "+broken, err.Error())
}

func TestWinnerCommand(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "file.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["Player2"],["Player1"]]`), 0o644))
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o644))

	stdout, _, err := run(t, "", "winner", path)
	require.NoError(t, err)
	assert.Equal(t, "Player2\n", stdout)

	_, _, err = run(t, "", "winner", empty)
	require.Error(t, err)
	assert.Equal(t, "No players yet", err.Error())
}
