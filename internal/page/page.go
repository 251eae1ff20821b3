// Package page holds the ordered page sections laid out one viewport-height apart
// and a vertical scroll offset over them.
package page

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus"

	"scrollscene/internal/tween"
)

// DefaultSmooth is how long a "bring into view" scroll takes.
const DefaultSmooth = 600 * time.Millisecond

// Section is one full-height page region.
type Section struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Body  string `yaml:"body,omitempty"`
}

// Page is the scrollable stack of sections. Offset 0 shows the first section at the top.
type Page struct {
	sections []Section
	viewport float32
	offset   float32
	smooth   time.Duration
	tweens   *tween.Engine
	scroll   *tween.Tween
	log      logrus.FieldLogger
}

// New returns a page at offset 0. tweens drives smooth scrolling and must be advanced
// by the caller each frame.
func New(sections []Section, viewportHeight float32, smooth time.Duration, tweens *tween.Engine, log logrus.FieldLogger) *Page {
	if smooth < 0 {
		smooth = 0
	}
	return &Page{
		sections: sections,
		viewport: viewportHeight,
		smooth:   smooth,
		tweens:   tweens,
		log:      log,
	}
}

// Sections returns the sections in order.
func (p *Page) Sections() []Section {
	return p.sections
}

// Len returns the number of sections.
func (p *Page) Len() int {
	return len(p.sections)
}

// Offset returns the current scroll offset in pixels.
func (p *Page) Offset() float32 {
	return p.offset
}

// Viewport returns the viewport height in pixels.
func (p *Page) Viewport() float32 {
	return p.viewport
}

// Scrolling reports whether a smooth scroll is in flight.
func (p *Page) Scrolling() bool {
	return p.scroll != nil && !p.scroll.Done()
}

// maxOffset is the offset that puts the last section at the top.
func (p *Page) maxOffset() float32 {
	if len(p.sections) == 0 {
		return 0
	}
	return float32(len(p.sections)-1) * p.viewport
}

func (p *Page) clamp(v float32) float32 {
	return math32.Max(0, math32.Min(v, p.maxOffset()))
}

// Top returns the offset at which section i is at the top of the viewport.
func (p *Page) Top(i int) float32 {
	return float32(i) * p.viewport
}

// Current returns the index of the section nearest the top of the viewport, or -1
// when there are no sections.
func (p *Page) Current() int {
	if len(p.sections) == 0 {
		return -1
	}
	if p.viewport <= 0 {
		return 0
	}
	i := int(math32.Round(p.offset / p.viewport))
	if i >= len(p.sections) {
		i = len(p.sections) - 1
	}
	return i
}

// NavigateTo smooth-scrolls section index into view. Indices outside the section
// range are ignored.
func (p *Page) NavigateTo(index int) {
	if index < 0 || index >= len(p.sections) {
		p.log.WithField("index", index).Debug("navigation out of range")
		return
	}
	if p.scroll != nil {
		p.scroll.Stop()
	}
	target := p.Top(index)
	p.log.WithFields(logrus.Fields{"index": index, "id": p.sections[index].ID}).Info("scroll into view")
	p.scroll = p.tweens.Float(p.offset, target, p.smooth, tween.QuadInOut, func(v float32) {
		p.offset = p.clamp(v)
	})
}

// Nudge moves the offset by px right away, clamped to the page.
func (p *Page) Nudge(px float32) {
	p.offset = p.clamp(p.offset + px)
}

// Resize changes the viewport height, keeping the current section at the top.
func (p *Page) Resize(height float32) {
	if height <= 0 || height == p.viewport {
		return
	}
	cur := p.Current()
	if p.scroll != nil {
		p.scroll.Stop()
		p.scroll = nil
	}
	p.viewport = height
	if cur >= 0 {
		p.offset = p.Top(cur)
	}
}

// Visible calls fn for every section that overlaps the viewport, with its top edge
// in screen coordinates.
func (p *Page) Visible(fn func(i int, s Section, screenY float32)) {
	for i, s := range p.sections {
		y := p.Top(i) - p.offset
		if y+p.viewport <= 0 || y >= p.viewport {
			continue
		}
		fn(i, s, y)
	}
}
