package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParentsAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dist", "css", "tokens.css")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFileRejectsEmptyPath(t *testing.T) {
	require.Error(t, WriteFile("", []byte("x")))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")

	require.NoError(t, WriteJSON(path, map[string]any{"amber": map[string]string{"500": "#F59E0B"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"amber\": {\n    \"500\": \"#F59E0B\"\n  }\n}\n", string(data))
}

func TestEncodeJSONMatchesWriteJSON(t *testing.T) {
	value := map[string]any{"brand": "#F59E0B"}
	path := filepath.Join(t.TempDir(), "palette.json")
	require.NoError(t, WriteJSON(path, value))

	encoded, err := EncodeJSON(value)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(encoded), string(written))

	_, err = EncodeJSON(map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestEmit(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Emit(buf, "", []byte("stdout")))
	require.NoError(t, Emit(buf, "-", []byte("+dash")))
	assert.Equal(t, "stdout+dash", buf.String())

	path := filepath.Join(t.TempDir(), "out.css")
	require.NoError(t, Emit(buf, path, []byte("file")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file", string(data))
	assert.Equal(t, "stdout+dash", buf.String())
}
