package backdrop

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halves is white on the left half and black on the right.
func halves(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x < w/2 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestApplyNoop(t *testing.T) {
	src := halves(8, 4)
	out := Apply(src, Options{})
	assert.Equal(t, src.Pix, out.Pix)
	assert.NotSame(t, src, out)
}

func TestApplyBlurSoftensEdge(t *testing.T) {
	out := Apply(halves(16, 4), Options{Blur: 2})
	edge := out.RGBAAt(8, 2)
	assert.Greater(t, edge.R, uint8(0))
	assert.Less(t, edge.R, uint8(255))
}

func TestApplyDim(t *testing.T) {
	out := Apply(halves(8, 4), Options{Dim: -0.5})
	assert.Less(t, out.RGBAAt(0, 0).R, uint8(255))
	assert.Equal(t, uint8(255), out.RGBAAt(0, 0).A)

	// Out-of-range values are clamped.
	black := Apply(halves(8, 4), Options{Dim: -5})
	assert.Equal(t, uint8(0), black.RGBAAt(0, 0).R)
}

func TestApplyOffsetBounds(t *testing.T) {
	sub := halves(8, 8).SubImage(image.Rect(2, 2, 6, 6))
	out := Apply(sub, Options{})
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, halves(8, 4)))
	require.NoError(t, f.Close())

	out, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), out.Bounds())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(0, 0))

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"), Options{})
	assert.Error(t, err)
}
