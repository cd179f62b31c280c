package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfndev/ybudget/internal/config"
)

func gitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

var testGit = config.GitConfig{
	AutoCommit:  true,
	AuthorName:  "YBudget Test",
	AuthorEmail: "test@ybudget.local",
}

func TestInitAndIsRepo(t *testing.T) {
	if !gitAvailable() {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	assert.False(t, IsRepo(dir))
	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir))
}

func TestCommitSession(t *testing.T) {
	if !gitAvailable() {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	// Identity must exist for commit to work in a bare environment.
	for _, args := range [][]string{
		{"config", "user.name", "YBudget Test"},
		{"config", "user.email", "test@ybudget.local"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run())
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte("id\n"), 0o644))

	hash, err := CommitSession(dir, "import: 2 transactions", testGit)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Clean tree: no commit, no error.
	hash, err = CommitSession(dir, "review: nothing changed", testGit)
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestCommitSession_DisabledOrNotRepo(t *testing.T) {
	dir := t.TempDir()

	hash, err := CommitSession(dir, "noop", testGit)
	require.NoError(t, err)
	assert.Empty(t, hash)

	disabled := testGit
	disabled.AutoCommit = false
	hash, err = CommitSession(dir, "noop", disabled)
	require.NoError(t, err)
	assert.Empty(t, hash)
}
