package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	artifacts := []Artifact{
		{Path: "app.go", Content: []byte("package main\n")},
		{Path: "routes/index.go", Content: []byte("package routes\n")},
		{Path: "db/db.go", Content: []byte("package db\n")},
	}

	t.Run("writes artifacts and layout", func(t *testing.T) {
		out := t.TempDir()
		w := NewWriter(out, nil)
		require.NoError(t, w.Write(context.Background(), artifacts))

		for _, a := range artifacts {
			data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(a.Path)))
			require.NoError(t, err)
			assert.Equal(t, a.Content, data)
		}
		assert.DirExists(t, filepath.Join(out, PublicDir))
		assert.DirExists(t, filepath.Join(out, ViewsDir))
		assert.Equal(t, 3, w.Metrics().FilesWritten)
		assert.EqualValues(t, 39, w.Metrics().TotalBytes)
	})

	t.Run("no views", func(t *testing.T) {
		out := t.TempDir()
		require.NoError(t, NewWriter(out, mustConfig(t, WithoutViews())).Write(context.Background(), nil))
		assert.DirExists(t, filepath.Join(out, "routes"))
		assert.DirExists(t, filepath.Join(out, PublicDir))
		assert.NoDirExists(t, filepath.Join(out, ViewsDir))
	})

	t.Run("overwrites existing files", func(t *testing.T) {
		out := t.TempDir()
		path := filepath.Join(out, "app.go")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
		require.NoError(t, NewWriter(out, nil).Write(context.Background(), artifacts[:1]))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "package main\n", string(data))
	})

	t.Run("write failure", func(t *testing.T) {
		out := t.TempDir()
		// A directory where the file should go makes the write fail.
		require.NoError(t, os.MkdirAll(filepath.Join(out, "app.go"), 0o755))

		err := NewWriter(out, nil).Write(context.Background(), artifacts[:1])
		require.Error(t, err)
		var ge *GenerationError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, "app.go", ge.Artifact)
		assert.Equal(t, "write", ge.Phase)
	})
}
