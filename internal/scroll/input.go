package scroll

import "time"

// DefaultNudge is the immediate scroll offset, in pixels, applied for every raw wheel event.
const DefaultNudge = 10

// Nudger receives the immediate, pre-debounce visual response to a raw wheel event.
type Nudger interface {
	Nudge(px float32)
}

// Input feeds raw wheel events through a Debouncer into a Controller.
type Input struct {
	ctrl  *Controller
	deb   *Debouncer
	nudge Nudger
	px    float32
}

// NewInput wires a controller to a debouncer. nudge may be nil.
func NewInput(ctrl *Controller, deb *Debouncer, nudge Nudger, nudgePx float32) *Input {
	return &Input{ctrl: ctrl, deb: deb, nudge: nudge, px: nudgePx}
}

// Wheel records one raw wheel event: nudge now, step later. If the previous burst
// had already gone quiet but no Tick released it yet, that step is applied first
// and returned with ok true.
func (in *Input) Wheel(ev WheelEvent, now time.Time) (tr Transition, ok bool) {
	if due, released := in.deb.Push(ev, now); released {
		tr, ok = in.ctrl.Handle(due), true
	}
	if in.nudge != nil && in.px != 0 {
		in.nudge.Nudge(in.px)
	}
	return tr, ok
}

// Tick releases a debounced step if its quiet period has passed and applies it.
// ok is false when nothing was due.
func (in *Input) Tick(now time.Time) (tr Transition, ok bool) {
	ev, due := in.deb.Poll(now)
	if !due {
		return Transition{}, false
	}
	return in.ctrl.Handle(ev), true
}

// Controller returns the wrapped controller.
func (in *Input) Controller() *Controller {
	return in.ctrl
}

// Close drops any pending step.
func (in *Input) Close() {
	in.deb.Cancel()
}
