// Package backdrop prepares the page background image before it is uploaded:
// an optional gaussian blur and a brightness change so section text stays readable.
package backdrop

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
)

// Options are the filters applied to the background.
type Options struct {
	// Blur is the gaussian radius in pixels; 0 disables it.
	Blur float64
	// Dim is the brightness change in [-1, 1]; negative darkens.
	Dim float64
}

// Load decodes the image at path (PNG or JPEG) and applies opts.
func Load(path string, opts Options) (*image.RGBA, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("backdrop: %w", err)
	}
	return Apply(img, opts), nil
}

// Apply filters img. The result is always a new RGBA image.
func Apply(img image.Image, opts Options) *image.RGBA {
	out := toRGBA(img)
	if opts.Blur > 0 {
		out = blur.Gaussian(out, opts.Blur)
	}
	if opts.Dim != 0 {
		out = adjust.Brightness(out, clamp(opts.Dim, -1, 1))
	}
	return out
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
