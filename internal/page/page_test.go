package page

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollscene/internal/tween"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sections(n int) []Section {
	out := make([]Section, n)
	for i := range out {
		out[i] = Section{ID: "section" + string(rune('1'+i)), Title: "Section"}
	}
	return out
}

func newPage(t *testing.T, n int) (*Page, *tween.Engine) {
	t.Helper()
	log, _ := test.NewNullLogger()
	eng := tween.NewEngine(epoch)
	return New(sections(n), 800, 600*time.Millisecond, eng, log), eng
}

func TestNavigateSmoothScrolls(t *testing.T) {
	p, eng := newPage(t, 4)
	p.NavigateTo(2)
	require.True(t, p.Scrolling())

	eng.Update(epoch.Add(300 * time.Millisecond))
	assert.InDelta(t, 800, p.Offset(), 1e-3, "halfway on quad in/out")

	eng.Update(epoch.Add(600 * time.Millisecond))
	assert.Equal(t, float32(1600), p.Offset())
	assert.False(t, p.Scrolling())
	assert.Equal(t, 2, p.Current())
}

func TestNavigateOutOfRangeIgnored(t *testing.T) {
	p, eng := newPage(t, 3)
	p.NavigateTo(-1)
	p.NavigateTo(3)
	assert.False(t, p.Scrolling())
	assert.Equal(t, 0, eng.Len())
	assert.Equal(t, float32(0), p.Offset())
}

func TestNavigateRetargets(t *testing.T) {
	p, eng := newPage(t, 4)
	p.NavigateTo(3)
	eng.Update(epoch.Add(300 * time.Millisecond))
	p.NavigateTo(0)
	eng.Update(epoch.Add(2 * time.Second))
	assert.Equal(t, float32(0), p.Offset())
	assert.Equal(t, 0, eng.Len())
}

func TestNudgeClamps(t *testing.T) {
	p, _ := newPage(t, 2)
	p.Nudge(10)
	assert.Equal(t, float32(10), p.Offset())
	p.Nudge(-50)
	assert.Equal(t, float32(0), p.Offset())
	p.Nudge(5000)
	assert.Equal(t, float32(800), p.Offset())
}

func TestResizeKeepsSection(t *testing.T) {
	p, eng := newPage(t, 4)
	p.NavigateTo(2)
	eng.Update(epoch.Add(time.Second))
	p.Resize(600)
	assert.Equal(t, float32(1200), p.Offset())
	assert.Equal(t, 2, p.Current())
}

func TestVisible(t *testing.T) {
	p, _ := newPage(t, 4)
	p.Nudge(400)
	var seen []int
	p.Visible(func(i int, _ Section, y float32) {
		seen = append(seen, i)
		if i == 1 {
			assert.Equal(t, float32(400), y)
		}
	})
	assert.Equal(t, []int{0, 1}, seen)
}

func TestEmptyPage(t *testing.T) {
	p, _ := newPage(t, 0)
	assert.Equal(t, -1, p.Current())
	p.Nudge(10)
	assert.Equal(t, float32(0), p.Offset())
	assert.NotPanics(t, func() { p.NavigateTo(0) })
}
