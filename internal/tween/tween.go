package tween

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Easing maps linear progress t in [0,1] to eased progress.
type Easing func(t float32) float32

// Linear is the identity easing (the default for object scale-in).
func Linear(t float32) float32 { return t }

// QuadInOut accelerates for the first half and decelerates for the second.
// Used for smooth page scrolling.
func QuadInOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math32.Pow(-2*t+2, 2)/2
}

// CubicOut starts fast and settles into the target.
func CubicOut(t float32) float32 {
	return 1 - math32.Pow(1-t, 3)
}

// Tween interpolates a Vec3 from one value to another over a fixed duration.
// The current value is pushed to apply on every engine update, including the final one.
type Tween struct {
	from, to mgl32.Vec3
	start    time.Time
	duration time.Duration
	ease     Easing
	apply    func(mgl32.Vec3)
	done     bool
}

// Done reports whether the tween reached its target or was stopped.
func (t *Tween) Done() bool {
	return t.done
}

// Stop halts the tween where it is. The engine drops it on the next update.
func (t *Tween) Stop() {
	t.done = true
}

// progress returns eased progress at now, clamped to [0,1].
func (t *Tween) progress(now time.Time) float32 {
	if t.duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.start)
	if elapsed <= 0 {
		return 0
	}
	p := float32(elapsed) / float32(t.duration)
	if p >= 1 {
		return 1
	}
	return t.ease(p)
}

// step applies the value at now and marks the tween finished once the duration elapsed.
func (t *Tween) step(now time.Time) {
	if t.done {
		return
	}
	p := t.progress(now)
	t.apply(Lerp(t.from, t.to, p))
	if now.Sub(t.start) >= t.duration {
		t.done = true
	}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Engine owns running tweens and the clock they run on. It is advanced once per frame.
// Not safe for concurrent use; everything runs on the frame loop.
type Engine struct {
	now    time.Time
	tweens []*Tween
}

// NewEngine returns an engine whose clock starts at now.
func NewEngine(now time.Time) *Engine {
	return &Engine{now: now}
}

// Now returns the time of the last Update (or construction).
func (e *Engine) Now() time.Time {
	return e.now
}

// Len returns the number of tweens still running.
func (e *Engine) Len() int {
	return len(e.tweens)
}

// To starts a tween from -> to over d, beginning at the engine's current time.
// A nil ease means Linear. The starting value is applied immediately.
func (e *Engine) To(from, to mgl32.Vec3, d time.Duration, ease Easing, apply func(mgl32.Vec3)) *Tween {
	if ease == nil {
		ease = Linear
	}
	t := &Tween{from: from, to: to, start: e.now, duration: d, ease: ease, apply: apply}
	apply(from)
	e.tweens = append(e.tweens, t)
	return t
}

// Float is To for a single scalar, carried in the X component.
func (e *Engine) Float(from, to float32, d time.Duration, ease Easing, apply func(float32)) *Tween {
	return e.To(mgl32.Vec3{from}, mgl32.Vec3{to}, d, ease, func(v mgl32.Vec3) { apply(v.X()) })
}

// Update advances the clock to now, applies every running tween and drops finished ones.
// A now earlier than the last update is ignored so the clock never runs backwards.
func (e *Engine) Update(now time.Time) {
	if now.After(e.now) {
		e.now = now
	}
	live := e.tweens[:0]
	for _, t := range e.tweens {
		t.step(e.now)
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(e.tweens); i++ {
		e.tweens[i] = nil
	}
	e.tweens = live
}
