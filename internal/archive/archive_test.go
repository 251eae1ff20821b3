package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestUnzipAndFindModel(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"eagle/source/eagle.glb":      "glb",
		"eagle/source/eagle.obj":      "obj",
		"eagle/textures/feathers.jpg": "jpg",
	})
	dest := t.TempDir()

	files, err := Unzip(context.Background(), zipPath, dest)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	model, err := FindModel(dest)
	require.NoError(t, err)
	assert.Equal(t, "eagle.glb", filepath.Base(model))
}

func TestFindModelPrefersShallow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "deep", "er"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deep", "er", "a.glb"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.glb"), nil, 0644))

	model, err := FindModel(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "z.glb"), model)
}

func TestFindModelNone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), nil, 0644))
	_, err := FindModel(dir)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestUnzipCanceled(t *testing.T) {
	zipPath := writeZip(t, map[string]string{"a.glb": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Unzip(ctx, zipPath, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsZip(t *testing.T) {
	assert.True(t, IsZip("x/Bundle.ZIP"))
	assert.False(t, IsZip("x/model.glb"))
}
