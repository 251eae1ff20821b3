// Package debug draws the optional on-screen overlays: FPS, heap usage and a
// few status lines (scroll state, load progress, recent log lines).
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 4
	// Counters are re-read every updateInterval frames to keep per-frame allocations down.
	updateInterval = 30
)

var statusColor = rl.NewColor(230, 230, 230, 200)

// Debug holds overlay toggles. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowState    bool
	font         rl.Font
	frameCount   uint32
	fpsText      string
	memText      string
	memStats     runtime.MemStats
}

// New returns a Debug with every overlay hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the overlay font. A zero texture ID means raylib's default font.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the enabled overlays. FPS and heap go top-right in green; status
// lines go bottom-left, last line lowest. Call after everything else is drawn.
func (d *Debug) Draw(status []string) {
	d.frameCount++
	refresh := d.frameCount%updateInterval == 0
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())

	y := float32(padding)
	if d.ShowFPS {
		if refresh || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.fpsText, screenW, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if refresh || d.memText == "" {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		d.drawRight(d.memText, screenW, y, rl.Green)
	}

	if !d.ShowState {
		return
	}
	y = screenH - padding - float32(len(status))*lineHeight
	for _, line := range status {
		d.drawText(line, padding, y, statusColor)
		y += lineHeight
	}
}

func (d *Debug) drawRight(text string, screenW, y float32, c rl.Color) {
	d.drawText(text, screenW-d.measure(text)-padding, y, c)
}

func (d *Debug) measure(text string) float32 {
	if d.font.Texture.ID != 0 {
		return rl.MeasureTextEx(d.font, text, fontSize, 1).X
	}
	return float32(rl.MeasureText(text, fontSize))
}

func (d *Debug) drawText(text string, x, y float32, c rl.Color) {
	if d.font.Texture.ID != 0 {
		rl.DrawTextEx(d.font, text, rl.NewVector2(x, y), fontSize, 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), fontSize, c)
}
