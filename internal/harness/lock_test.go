package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	first, err := LockDir(dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, LockFileName))

	_, err = LockDir(dir)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Unlock())

	again, err := LockDir(dir)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}

func TestLockOutputs(t *testing.T) {
	base := t.TempDir()
	outDir := filepath.Join(base, "out")
	elsewhere := filepath.Join(base, "elsewhere")

	plan := []Spec{
		{Output: filepath.Join(outDir, "filecopy1.txt")},
		{Output: filepath.Join(elsewhere, "two.txt")},
		{Output: filepath.Join(outDir, "filecopy3.txt")},
	}
	assert.Equal(t, []string{outDir, elsewhere}, OutputDirs(plan))

	locks, err := LockOutputs(plan)
	require.NoError(t, err)
	require.Len(t, locks, 2)
	assert.FileExists(t, filepath.Join(elsewhere, LockFileName))

	// Any directory already held blocks the whole plan.
	_, err = LockOutputs(plan[1:2])
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, Unlock(locks))
}

func TestLockOutputs_ReleasesOnFailure(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "first")
	second := filepath.Join(base, "second")

	held, err := LockDir(second)
	require.NoError(t, err)
	defer func() { _ = held.Unlock() }()

	_, err = LockOutputs([]Spec{
		{Output: filepath.Join(first, "a.txt")},
		{Output: filepath.Join(second, "b.txt")},
	})
	require.ErrorIs(t, err, ErrLocked)

	// The lock on the first directory was given back.
	l, err := LockDir(first)
	require.NoError(t, err)
	require.NoError(t, l.Unlock())
}
