package opener

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubStart(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := start
	start = fn
	t.Cleanup(func() { start = orig })
}

func TestOpen_StartsHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	var got []string
	stubStart(t, func(p string) error {
		got = append(got, p)
		return nil
	})

	require.NoError(t, Open(path))
	assert.Equal(t, []string{path}, got)
}

func TestOpen_HandlerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	boom := errors.New("no handler")
	stubStart(t, func(string) error { return boom })

	err := Open(path)
	assert.ErrorIs(t, err, boom)
}

func TestOpen_MissingFile(t *testing.T) {
	called := false
	stubStart(t, func(string) error {
		called = true
		return nil
	})

	err := Open(filepath.Join(t.TempDir(), "gone.pdf"))
	assert.Error(t, err)
	assert.False(t, called)
}
