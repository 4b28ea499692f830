package harness

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copybench/copybench/internal/copier"
	"github.com/copybench/copybench/internal/testutil"
)

func TestNewTask_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	task, err := NewTask("missing", copier.Byte(), filepath.Join(dir, "nope.txt"), out)
	require.Error(t, err)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, ErrOpenInput)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, testutil.FileExists(out), "output must not be created when input is missing")
}

func TestNewTask_BadOutput(t *testing.T) {
	dir := t.TempDir()
	in, err := testutil.CreateTestFile(dir, "in.bin", 100, false)
	require.NoError(t, err)

	_, err = NewTask("bad output", copier.Byte(), in, filepath.Join(dir, "no", "such", "dir", "out.bin"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpenOutput)
}

func TestTask_RunProducesIdenticalCopy(t *testing.T) {
	dir := t.TempDir()
	in, err := testutil.CreateTestFile(dir, "in.bin", 16*1024, true)
	require.NoError(t, err)

	strategies := []copier.Strategy{
		copier.Byte(),
		copier.Block(1024),
		copier.Block(4 * 1024),
		copier.BlockExact(3000),
	}

	for i, s := range strategies {
		t.Run(s.Name, func(t *testing.T) {
			out := filepath.Join(dir, "out-"+s.Name)
			task, err := NewTask(Label(i, s), s, in, out)
			require.NoError(t, err)
			assert.Equal(t, int64(16*1024), task.InputSize())

			read, written, err := task.Run()
			require.NoError(t, err)
			assert.Equal(t, int64(16*1024), read)
			assert.Equal(t, int64(16*1024), written)

			same, err := testutil.CompareFiles(in, out)
			require.NoError(t, err)
			assert.True(t, same, "output differs from input")
		})
	}
}

func TestTask_RunPaddedBlock(t *testing.T) {
	dir := t.TempDir()
	const size = 10*1024 + 100
	in, err := testutil.CreateTestFile(dir, "in.bin", size, false)
	require.NoError(t, err)
	out := filepath.Join(dir, "out.bin")

	task, err := NewTask("padded", copier.Block(1024), in, out)
	require.NoError(t, err)

	read, written, err := task.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(size), read)
	assert.Equal(t, int64(11*1024), written)
	require.NoError(t, testutil.VerifyFileSize(out, 11*1024))

	prefix, err := testutil.ReadFileChunk(out, 0, size)
	require.NoError(t, err)
	want, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, want, prefix)

	tail, err := testutil.ReadFileChunk(out, size, 1024-100)
	require.NoError(t, err)
	assert.Equal(t, want[9*1024+100:10*1024], tail)
}

func TestTask_RunTwice(t *testing.T) {
	dir := t.TempDir()
	in, err := testutil.CreateTestFile(dir, "in.bin", 10, false)
	require.NoError(t, err)

	task, err := NewTask("once", copier.Byte(), in, filepath.Join(dir, "out.bin"))
	require.NoError(t, err)

	_, _, err = task.Run()
	require.NoError(t, err)

	_, _, err = task.Run()
	assert.ErrorIs(t, err, ErrTaskClosed)
}

func TestTask_CloseWithoutRun(t *testing.T) {
	dir := t.TempDir()
	in, err := testutil.CreateTestFile(dir, "in.bin", 10, false)
	require.NoError(t, err)

	task, err := NewTask("closed", copier.Byte(), in, filepath.Join(dir, "out.bin"))
	require.NoError(t, err)

	require.NoError(t, task.Close())
	require.NoError(t, task.Close())

	_, _, err = task.Run()
	assert.ErrorIs(t, err, ErrTaskClosed)
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	resources := filepath.Join(dir, "resources")
	require.NoError(t, os.MkdirAll(resources, 0o755))
	_, err := testutil.CreateTestFile(resources, "alice.txt", 10, false)
	require.NoError(t, err)

	t.Run("found in search dir", func(t *testing.T) {
		got, err := ResolveInput("alice.txt", []string{filepath.Join(dir, "src"), resources})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(resources, "alice.txt"), got)
	})

	t.Run("direct path wins", func(t *testing.T) {
		direct := filepath.Join(resources, "alice.txt")
		got, err := ResolveInput(direct, []string{dir})
		require.NoError(t, err)
		assert.Equal(t, direct, got)
	})

	t.Run("directory is not an input", func(t *testing.T) {
		_, err := ResolveInput(resources, nil)
		assert.ErrorIs(t, err, ErrOpenInput)
	})

	t.Run("absolute path is not searched", func(t *testing.T) {
		_, err := ResolveInput(filepath.Join(dir, "alice.txt"), []string{resources})
		assert.ErrorIs(t, err, ErrOpenInput)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		_, err := ResolveInput("nope.txt", []string{resources})
		assert.ErrorIs(t, err, ErrOpenInput)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}
