// Package asset loads model files in the background and reports the outcome as a
// stream of progress, loaded and failed events.
package asset

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Kind is the type of a load event.
type Kind int

const (
	Progress Kind = iota
	Loaded
	Failed
)

func (k Kind) String() string {
	switch k {
	case Progress:
		return "progress"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is one notification from a Request. Fraction is set for Progress, Path for
// Loaded (a local file ready for the GPU loader), Err for Failed.
type Event struct {
	Kind     Kind
	Fraction float64
	Path     string
	Err      error
}

// Terminal reports whether ev ends the request.
func (ev Event) Terminal() bool {
	return ev.Kind == Loaded || ev.Kind == Failed
}

// eventBuffer bounds queued progress events; one slot is always kept for the final event.
const eventBuffer = 16

// Request is one in-flight load. It yields any number of Progress events followed by
// exactly one Loaded or Failed event, then its channel closes.
type Request struct {
	Source string
	events chan Event
	cancel context.CancelFunc
}

// Events returns the event channel.
func (r *Request) Events() <-chan Event {
	return r.events
}

// Cancel aborts the load. The request still ends with a Failed event.
func (r *Request) Cancel() {
	if r.cancel != nil {
		r.cancel()
	}
}

// Poll hands every queued event to fn without blocking and reports whether the
// request has finished.
func (r *Request) Poll(fn func(Event)) (done bool) {
	for {
		select {
		case ev, ok := <-r.events:
			if !ok {
				return true
			}
			fn(ev)
		default:
			return false
		}
	}
}

// Completed returns a request that has already produced events. Useful to feed
// synthetic outcomes to code that consumes requests.
func Completed(src string, events ...Event) *Request {
	ch := make(chan Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return &Request{Source: src, events: ch}
}

// Fetcher makes src available as a local file. progress takes a fraction in [0,1].
type Fetcher interface {
	Fetch(ctx context.Context, src string, progress func(fraction float64)) (path string, err error)
}

// Source opens requests for model sources.
type Source interface {
	Load(ctx context.Context, src string) *Request
}

// Loader runs fetches on background goroutines.
type Loader struct {
	fetch Fetcher
	log   logrus.FieldLogger
}

// NewLoader returns a loader backed by f.
func NewLoader(f Fetcher, log logrus.FieldLogger) *Loader {
	return &Loader{fetch: f, log: log}
}

// Load starts fetching src and returns immediately.
func (l *Loader) Load(ctx context.Context, src string) *Request {
	ctx, cancel := context.WithCancel(ctx)
	events := make(chan Event, eventBuffer)
	req := &Request{Source: src, events: events, cancel: cancel}

	go func() {
		defer cancel()
		defer close(events)
		path, err := l.fetch.Fetch(ctx, src, func(f float64) {
			// Only this goroutine sends, so the length check cannot race with another send.
			if len(events) < cap(events)-1 {
				events <- Event{Kind: Progress, Fraction: clamp01(f)}
			}
		})
		if err != nil {
			l.log.WithError(err).WithField("source", src).Debug("fetch failed")
			events <- Event{Kind: Failed, Err: err}
			return
		}
		events <- Event{Kind: Loaded, Path: path}
	}()
	return req
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
