// Package scroll turns a stream of mouse-wheel events into discrete, debounced
// steps that either swap the displayed object or navigate page sections.
package scroll

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Phase is the controller's mode. The move from Cycling to Scrolling is one-way.
type Phase int

const (
	// Cycling: forward steps swap the displayed object, backward steps are ignored.
	Cycling Phase = iota
	// Scrolling: steps navigate page sections in both directions.
	Scrolling
)

func (p Phase) String() string {
	switch p {
	case Cycling:
		return "cycling"
	case Scrolling:
		return "scrolling"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// State is the controller state for a session. It is never persisted.
type State struct {
	ScrollCount int
	Phase       Phase
	ObjectIndex int
}

// AnimationDone reports whether the object-cycling phase is over.
func (s State) AnimationDone() bool {
	return s.Phase == Scrolling
}

// Kind says what a step did.
type Kind int

const (
	None Kind = iota
	Swap
	Navigate
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Swap:
		return "swap"
	case Navigate:
		return "navigate"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Transition is the outcome of one debounced step. Index is the object index for
// Swap and the section index for Navigate.
type Transition struct {
	Kind  Kind
	Index int
}

// WheelEvent is one wheel notification. DeltaY follows the browser convention:
// positive scrolls down (forward), zero or negative scrolls up (backward).
type WheelEvent struct {
	DeltaY float32
}

// ObjectSwapper shows the object at the given pool index.
type ObjectSwapper interface {
	SwapObject(index int)
}

// Navigator brings the section at index into view. Out-of-range indices are the
// navigator's to ignore.
type Navigator interface {
	NavigateTo(index int)
}

// forwardOffset is subtracted from the scroll count to get the section index on a
// forward step; the first two forward steps belong to object cycling.
const forwardOffset = 2

// Controller is the scroll state machine. Not safe for concurrent use.
type Controller struct {
	state    State
	objects  int
	sections int
	swap     ObjectSwapper
	nav      Navigator
	log      logrus.FieldLogger
}

// NewController returns a controller in the Cycling phase at object 0.
// objects is the size of the display pool and must be positive; sections is the
// number of page sections.
func NewController(objects, sections int, swap ObjectSwapper, nav Navigator, log logrus.FieldLogger) *Controller {
	if objects < 1 {
		objects = 1
	}
	if sections < 0 {
		sections = 0
	}
	return &Controller{
		objects:  objects,
		sections: sections,
		swap:     swap,
		nav:      nav,
		log:      log,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Handle applies one debounced wheel event and returns what it did.
func (c *Controller) Handle(ev WheelEvent) Transition {
	var tr Transition
	if ev.DeltaY <= 0 {
		tr = c.backward()
	} else {
		tr = c.forward()
	}

	c.log.WithFields(logrus.Fields{
		"delta":  ev.DeltaY,
		"action": tr.Kind,
		"index":  tr.Index,
		"count":  c.state.ScrollCount,
		"phase":  c.state.Phase,
	}).Debug("scroll step")
	return tr
}

func (c *Controller) backward() Transition {
	if c.state.Phase == Cycling {
		return Transition{}
	}
	if c.state.ScrollCount == 0 {
		return Transition{}
	}
	c.state.ScrollCount--
	return c.navigate(c.state.ScrollCount)
}

func (c *Controller) forward() Transition {
	c.state.ScrollCount++
	count := c.state.ScrollCount
	// The stored count never passes the section count. Navigation still uses the
	// unclamped step, which matches clamping before the next step.
	if c.state.ScrollCount > c.sections {
		c.state.ScrollCount = c.sections
	}

	switch {
	case count > forwardOffset:
		tr := c.navigate(count - forwardOffset)
		if count >= 3 {
			c.state.Phase = Scrolling
		}
		return tr
	case c.state.Phase == Cycling:
		c.state.ObjectIndex = (c.state.ObjectIndex + 1) % c.objects
		if c.swap != nil {
			c.swap.SwapObject(c.state.ObjectIndex)
		}
		return Transition{Kind: Swap, Index: c.state.ObjectIndex}
	default:
		return Transition{}
	}
}

func (c *Controller) navigate(index int) Transition {
	if c.nav != nil {
		c.nav.NavigateTo(index)
	}
	return Transition{Kind: Navigate, Index: index}
}
