package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollscene/internal/page"
	"scrollscene/internal/style"
)

const (
	accentBarWidth = 6
	titleGap       = 16
)

// DrawOverlay draws every visible section over the 3D frame, then the debug overlay.
func (b *Backend) DrawOverlay(p *page.Page, status []string) {
	sw := float32(rl.GetScreenWidth())
	h := p.Viewport()
	p.Visible(func(_ int, s page.Section, y float32) {
		b.drawSection(s, b.sheet.Section(s.ID), y, sw, h)
	})
	b.debug.Draw(status)
}

func (b *Backend) drawSection(s page.Section, c style.Computed, y, w, h float32) {
	if c.Background.A > 0 {
		rl.DrawRectangleRec(rl.NewRectangle(0, y, w, h), color(c.Background))
	}
	pad := float32(c.Padding)
	titleSize, bodySize := float32(c.TitleSize), float32(c.BodySize)

	titleW := b.measure(s.Title, titleSize)
	bodyW := b.measure(s.Body, bodySize)
	blockH := titleSize
	if s.Body != "" {
		blockH += titleGap + bodySize
	}
	top := y + (h-blockH)/2

	x := pad
	if c.Align == "center" {
		x = (w - titleW) / 2
	} else {
		rl.DrawRectangleRec(rl.NewRectangle(pad-accentBarWidth*2, top, accentBarWidth, blockH), color(c.Accent))
	}
	b.text(s.Title, x, top, titleSize, color(c.Color))

	if s.Body == "" {
		return
	}
	if c.Align == "center" {
		x = (w - bodyW) / 2
	}
	b.text(s.Body, x, top+titleSize+titleGap, bodySize, color(c.Color))
}

func (b *Backend) measure(text string, size float32) float32 {
	if b.font.Texture.ID != 0 {
		return rl.MeasureTextEx(b.font, text, size, 1).X
	}
	return float32(rl.MeasureText(text, int32(size)))
}

func (b *Backend) text(text string, x, y, size float32, c rl.Color) {
	if b.font.Texture.ID != 0 {
		rl.DrawTextEx(b.font, text, rl.NewVector2(x, y), size, 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), int32(size), c)
}

func color(c style.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
