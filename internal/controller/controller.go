// internal/controller/controller.go
//
// Roster – Form submission handler.
//
// Context
//   One Controller drives one open form.  It receives intents from the
//   form's buttons and runs exactly one of three transitions:
//
//     Save   read the form, build the entity through its validated setters,
//            and append it to the store.  Any failure (missing data, invalid
//            data, or a failed read) is logged at warn, handed to the error
//            presenter, and the partial entity is dropped.  Nothing escapes
//            Handle.
//     Clear  reset every control: text to "", selections to index 0.
//     Close  dispose the window.  The window is released once; later
//            intents are ignored.
//
//   The logger and presenter are injected so tests can observe both.
//
//------------------------------------------------------------------------------

package controller

import (
	"errors"

	"go.uber.org/zap"

	"github.com/yanizio/roster/internal/entity"
	"github.com/yanizio/roster/internal/form"
	"github.com/yanizio/roster/internal/metrics"
)

// Store receives saved entities.  *datacontainer.List satisfies it.
type Store[T any] interface {
	Add(v T)
}

// ErrorPresenter shows a failed Save to the user.  Present returns once the
// user has dismissed the error.
type ErrorPresenter interface {
	Present(parent form.Window, err error)
}

// PresenterFunc adapts a function to ErrorPresenter.
type PresenterFunc func(parent form.Window, err error)

func (f PresenterFunc) Present(parent form.Window, err error) { f(parent, err) }

// ReadError wraps a failure to read a control.  It is the I/O failure of
// the taxonomy, next to entity.MissingData and entity.InvalidData.
type ReadError struct {
	Field string
	Err   error
}

func (e *ReadError) Error() string { return "read " + e.Field + ": " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// Controller handles intents for one form producing entities of type T.
type Controller[T any] struct {
	kind      string
	win       form.Window
	controls  []form.Control
	build     func() (T, error)
	store     Store[T]
	log       *zap.SugaredLogger
	presenter ErrorPresenter
}

func newController[T any](kind string, win form.Window, controls []form.Control,
	build func() (T, error), store Store[T], log *zap.SugaredLogger, p ErrorPresenter) *Controller[T] {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Controller[T]{
		kind:      kind,
		win:       win,
		controls:  controls,
		build:     build,
		store:     store,
		log:       log.With("form", kind),
		presenter: p,
	}
	win.Show()
	return c
}

// Kind is the entity kind the controller saves.
func (c *Controller[T]) Kind() string { return c.kind }

// Window returns the form window the controller owns.
func (c *Controller[T]) Window() form.Window { return c.win }

// HandleText parses button text and dispatches it.
func (c *Controller[T]) HandleText(s string) Outcome {
	in, ok := ParseIntent(s)
	if !ok {
		c.log.Debugw("unknown intent ignored", "intent", s)
		return Ignored
	}
	return c.Handle(in)
}

// Handle runs one transition to completion.
func (c *Controller[T]) Handle(in Intent) Outcome {
	if c.win.Disposed() {
		c.log.Warnw("intent after close ignored", "intent", string(in))
		return Ignored
	}
	metrics.FormIntentsTotal.WithLabelValues(c.kind, string(in)).Inc()

	switch in {
	case Save:
		return c.save()
	case Clear:
		c.clear()
		return Cleared
	case Close:
		c.win.Dispose()
		c.log.Debugw("form closed")
		return Closed
	default:
		c.log.Debugw("unknown intent ignored", "intent", string(in))
		return Ignored
	}
}

func (c *Controller[T]) save() Outcome {
	v, err := c.build()
	if err != nil {
		reason := classify(err)
		metrics.FormRejectionsTotal.WithLabelValues(c.kind, reason).Inc()
		c.log.Warnw(c.kind+" data rejected", "reason", reason, "err", err)
		if c.presenter != nil {
			c.presenter.Present(c.win, err)
		}
		return Rejected
	}

	c.store.Add(v)
	c.log.Infow(c.kind + " data saved")
	return Saved
}

func (c *Controller[T]) clear() {
	for _, ctl := range c.controls {
		ctl.Reset()
	}
}

// classify names the failure for logs and metrics.
func classify(err error) string {
	var re *ReadError
	switch {
	case errors.As(err, &re):
		return "io_failure"
	case errors.Is(err, entity.ErrMissingData):
		return entity.MissingData.String()
	case errors.Is(err, entity.ErrInvalidData):
		return entity.InvalidData.String()
	default:
		return "io_failure"
	}
}
