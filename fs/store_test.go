package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemirror"
	"sitemirror/fs"
)

func TestStore_Write(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewStore(dir)

		err := s.Write("assets/js/app.js", []byte("console.log(1);"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "assets", "js", "app.js"))
		require.NoError(t, err)
		assert.Equal(t, "console.log(1);", string(data))
	})

	t.Run("rejects paths escaping the root", func(t *testing.T) {
		t.Parallel()

		s := fs.NewStore(t.TempDir())

		err := s.Write("../outside.txt", []byte("nope"))
		assert.Equal(t, sitemirror.EINVALID, sitemirror.ErrorCode(err))
	})
}

func TestStore_WriteIfChanged(t *testing.T) {
	t.Parallel()

	s := fs.NewStore(t.TempDir())

	wrote, err := s.WriteIfChanged("index.html", []byte("v1"))
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = s.WriteIfChanged("index.html", []byte("v1"))
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = s.WriteIfChanged("index.html", []byte("v2"))
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := s.Read("index.html")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestStore_Read(t *testing.T) {
	t.Parallel()

	s := fs.NewStore(t.TempDir())

	_, err := s.Read("missing.css")
	assert.Equal(t, sitemirror.ENOTFOUND, sitemirror.ErrorCode(err))

	require.NoError(t, s.Write("style.css", []byte("body{}")))
	data, err := s.Read("style.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}

func TestStore_Exists(t *testing.T) {
	t.Parallel()

	s := fs.NewStore(t.TempDir())

	assert.False(t, s.Exists("img/logo.png"))
	require.NoError(t, s.Write("img/logo.png", []byte{0x89}))
	assert.True(t, s.Exists("img/logo.png"))
	// A directory is not a stored file.
	assert.False(t, s.Exists("img"))
}
