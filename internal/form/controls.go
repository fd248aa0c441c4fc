// internal/form/controls.go
//
// Roster – Forms subsystem: controls and the window frame.
//
// Context
//   A controller never talks to a widget toolkit.  It sees three narrow
//   contracts: TextField, Selection[T], and Window.  The in-memory types in
//   this file implement them and hold the live state of an open form, which
//   the renderer later turns into HTML.
//
//   Reads may come from an attached Source instead of the stored state.  The
//   web host attaches the posted body for the duration of one intent; each
//   read records what it saw so a re-render shows the user's input.  A
//   Source error surfaces from Text or Selected and the controller treats it
//   as an I/O failure.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yanizio/roster/internal/metrics"
)

// -----------------------------------------------------------------------------
// Contracts
// -----------------------------------------------------------------------------

// Control is anything Clear can reset.
type Control interface {
	Reset()
}

// TextField is a single-line text input.
type TextField interface {
	Control
	Text() (string, error)
	SetText(s string)
}

// Selection is a statically typed single-choice list.
type Selection[T any] interface {
	Control
	Options() []T
	SetOptions(opts []T)
	Index() int
	SetSelectedIndex(i int)
	// Selected returns the chosen option.  ok is false when nothing is
	// selected.
	Selected() (v T, ok bool, err error)
}

// Window is the disposable resource backing one open form.
type Window interface {
	Show()
	Dispose()
	Disposed() bool
}

// Source supplies raw submitted values by field name.
type Source interface {
	Value(name string) (string, error)
}

// -----------------------------------------------------------------------------
// Source binding
// -----------------------------------------------------------------------------

// binding is shared by every control of one form.
type binding struct {
	mu  sync.Mutex
	src Source
}

func (b *binding) get() Source {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.src
}

func (b *binding) set(src Source) {
	b.mu.Lock()
	b.src = src
	b.mu.Unlock()
}

// -----------------------------------------------------------------------------
// Text
// -----------------------------------------------------------------------------

// Text is the in-memory TextField.
type Text struct {
	name  string
	bind  *binding
	mu    sync.Mutex
	value string
}

var _ TextField = (*Text)(nil)

// NewText returns a detached text field.
func NewText(name string) *Text { return &Text{name: name} }

// Name is the field key.
func (t *Text) Name() string { return t.name }

// Text returns the attached source value when one is bound, else the stored
// value.
func (t *Text) Text() (string, error) {
	if src := t.bind.get(); src != nil {
		v, err := src.Value(t.name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", t.name, err)
		}
		t.SetText(v)
		return v, nil
	}
	return t.Value(), nil
}

// Value returns the stored value without consulting a source.
func (t *Text) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

func (t *Text) SetText(s string) {
	t.mu.Lock()
	t.value = s
	t.mu.Unlock()
}

// Reset empties the field.
func (t *Text) Reset() { t.SetText("") }

// -----------------------------------------------------------------------------
// List
// -----------------------------------------------------------------------------

// NoSelection is the index of an empty choice.
const NoSelection = -1

// List is the in-memory Selection.  A posted value is the option index in
// decimal.
type List[T any] struct {
	name  string
	bind  *binding
	mu    sync.Mutex
	opts  []T
	index int
}

var _ Selection[int] = (*List[int])(nil)

// NewList returns a detached selection with nothing selected.
func NewList[T any](name string) *List[T] {
	return &List[T]{name: name, index: NoSelection}
}

// Name is the field key.
func (l *List[T]) Name() string { return l.name }

func (l *List[T]) Options() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.opts))
	copy(out, l.opts)
	return out
}

// SetOptions replaces the options and selects the first one, if any.
func (l *List[T]) SetOptions(opts []T) {
	l.mu.Lock()
	l.opts = append([]T(nil), opts...)
	l.mu.Unlock()
	l.Reset()
}

func (l *List[T]) Index() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index
}

// SetSelectedIndex selects option i.  Out-of-range values clear the
// selection.
func (l *List[T]) SetSelectedIndex(i int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.opts) {
		l.index = NoSelection
		return
	}
	l.index = i
}

// Reset selects index 0, or nothing when the list is empty.
func (l *List[T]) Reset() { l.SetSelectedIndex(0) }

func (l *List[T]) Selected() (v T, ok bool, err error) {
	if src := l.bind.get(); src != nil {
		raw, err := src.Value(l.name)
		if err != nil {
			return v, false, fmt.Errorf("read %s: %w", l.name, err)
		}
		i, perr := strconv.Atoi(strings.TrimSpace(raw))
		if perr != nil {
			i = NoSelection
		}
		l.SetSelectedIndex(i)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index < 0 || l.index >= len(l.opts) {
		return v, false, nil
	}
	return l.opts[l.index], true, nil
}

// Labels renders every option with fmt.Sprint for display.
func (l *List[T]) Labels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.opts))
	for i, o := range l.opts {
		out[i] = fmt.Sprint(o)
	}
	return out
}

// lister is the untyped view of a List the renderer needs.
type lister interface {
	Control
	Labels() []string
	Index() int
}

// -----------------------------------------------------------------------------
// Frame
// -----------------------------------------------------------------------------

// Frame is the in-memory Window.  Dispose releases it exactly once.
type Frame struct {
	shown     atomic.Bool
	disposed  atomic.Bool
	once      sync.Once
	onDispose func()
}

var _ Window = (*Frame)(nil)

// OnDispose registers fn to run once when the frame is disposed.  Call it
// before Show.
func (f *Frame) OnDispose(fn func()) { f.onDispose = fn }

// Show makes the frame visible.  Showing a disposed frame is a no-op.
func (f *Frame) Show() {
	if f.disposed.Load() {
		return
	}
	if f.shown.CompareAndSwap(false, true) {
		metrics.OpenForms.Inc()
	}
}

func (f *Frame) Shown() bool { return f.shown.Load() }

// Dispose hides the frame and runs the OnDispose hook.  Later calls do
// nothing.
func (f *Frame) Dispose() {
	f.once.Do(func() {
		f.disposed.Store(true)
		if f.shown.CompareAndSwap(true, false) {
			metrics.OpenForms.Dec()
		}
		if f.onDispose != nil {
			f.onDispose()
		}
	})
}

func (f *Frame) Disposed() bool { return f.disposed.Load() }
