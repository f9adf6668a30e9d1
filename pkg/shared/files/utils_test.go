package files

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/rules.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "rules.json"), got)

	got, err = ExpandPath("/tmp/rules.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rules.json", got)
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))

	assert.NoError(t, ValidatePath(file))
	assert.ErrorContains(t, ValidatePath(dir), "is a directory")
	assert.ErrorContains(t, ValidatePath(filepath.Join(dir, "missing.json")), "path stat error")
}

func TestOpenInput(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "rules.json")
		require.NoError(t, os.WriteFile(file, []byte(`[{"code":"F401"}]`), 0o644))

		rc, err := OpenInput(file, nil)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, `[{"code":"F401"}]`, string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenInput(filepath.Join(t.TempDir(), "missing.json"), nil)
		assert.Error(t, err)
	})

	t.Run("std stream", func(t *testing.T) {
		rc, err := OpenInput("-", strings.NewReader("[]"))
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))

		assert.True(t, IsStdStream(""))
		assert.True(t, IsStdStream("-"))
		assert.False(t, IsStdStream("rules.json"))
	})
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "rules.json")

	require.NoError(t, WriteOutput(path, nil, []byte("[]\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	require.NoError(t, WriteOutput(path, nil, []byte("[1]\n")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[1]\n", string(data), "existing file is truncated")

	var stdout bytes.Buffer
	require.NoError(t, WriteOutput("", &stdout, []byte("[]\n")))
	assert.Equal(t, "[]\n", stdout.String())
}
