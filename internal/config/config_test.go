package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	yml := `
scroll:
  debounce: 150ms
model:
  source: https://example.com/eagle.zip
sections:
  - id: intro
    title: Intro
  - id: outro
    title: Outro
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, cfg.Scroll.Debounce)
	assert.Equal(t, float32(10), cfg.Scroll.Nudge, "unset fields keep defaults")
	assert.Equal(t, "https://example.com/eagle.zip", cfg.Model.Source)
	assert.Equal(t, float32(8), cfg.Model.Scale)
	require.Len(t, cfg.Sections, 2)
	assert.Equal(t, "outro", cfg.Sections[1].ID)
	assert.Len(t, cfg.Objects, 3)
}

func TestLoadRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("window: [unterminated"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("objects:\n  - name: blob\n    shape: blob\n"), 0644))
	_, err = Load(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown shape "blob"`)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scene.yaml")
	want := Default()
	want.Debug.ShowFPS = true
	want.Scroll.Smooth = 250 * time.Millisecond
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Objects = nil
	cfg.Scroll.Debounce = 0
	cfg.Model.Scale = -1
	cfg.Camera.Fovy = 200
	cfg.Scene.BackgroundDim = 2
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"objects", "scroll.debounce", "model.scale", "camera.fovy", "scene.background_dim"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF6347")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0xFF, G: 0x63, B: 0x47}, c)

	c, err = ParseColor("0x0000ff")
	require.NoError(t, err)
	assert.Equal(t, RGB{B: 0xFF}, c)

	_, err = ParseColor("#FFF")
	assert.Error(t, err)
	_, err = ParseColor("#GGGGGG")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvModel:    "assets/models/fox.glb",
		EnvScale:    "2.5",
		EnvLogLevel: "debug",
		EnvCacheDir: "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	require.NoError(t, ApplyEnv(&cfg, lookup))
	assert.Equal(t, "assets/models/fox.glb", cfg.Model.Source)
	assert.Equal(t, float32(2.5), cfg.Model.Scale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "cache", cfg.Model.CacheDir, "empty values are ignored")

	env[EnvScale] = "-1"
	assert.Error(t, ApplyEnv(&cfg, lookup))
}

func TestShippedConfigMatchesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
