// internal/web/sessions.go
//
// Roster – Web host: open form sessions.
//
// Context
//   Each browser form is one session: the in-memory form, the controller
//   driving it, and a one-shot flash message for the next render.  The
//   session id is a random UUID minted when the form is opened.  Closing the
//   form disposes its window, and the dispose hook removes the session, so
//   a closed form can never be reached again.
//
//   The session mutex serialises intents: one intent is fully processed
//   before the next is accepted.
//
//   Browsers abandon forms without pressing Close.  The evictor disposes
//   sessions idle longer than the TTL and, when more than maxOpen remain,
//   the least recently used ones.  Eviction is a Close: the window is
//   disposed and the dispose hook drops the session.
//
//------------------------------------------------------------------------------

package web

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yanizio/roster/internal/controller"
	"github.com/yanizio/roster/internal/form"
	"github.com/yanizio/roster/internal/metrics"
)

type session struct {
	id   string
	kind string

	mu     sync.Mutex
	form   *form.Form
	handle func(text string) controller.Outcome
	flash  string // error from the last rejected Save
	notice string // confirmation after the last Save

	lastSeen atomic.Int64 // UnixNano of the last request
}

func (s *session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

// take returns and clears the flash and notice.  Caller holds mu.
func (s *session) take() (flash, notice string) {
	flash, notice = s.flash, s.notice
	s.flash, s.notice = "", ""
	return flash, notice
}

type sessions struct {
	mu sync.RWMutex
	m  map[string]*session
}

func newSessions() *sessions {
	return &sessions{m: make(map[string]*session)}
}

func (ss *sessions) put(s *session) {
	ss.mu.Lock()
	ss.m[s.id] = s
	ss.mu.Unlock()
}

func (ss *sessions) get(id string) (*session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	s, ok := ss.m[id]
	return s, ok
}

func (ss *sessions) drop(id string) {
	ss.mu.Lock()
	delete(ss.m, id)
	ss.mu.Unlock()
}

func (ss *sessions) len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.m)
}

// stale returns the sessions to evict at now: idle ones first, then the
// least recently used beyond maxOpen.
func (ss *sessions) stale(now time.Time, idleTTL time.Duration, maxOpen int) (idle, lru []*session) {
	ss.mu.RLock()
	all := make([]*session, 0, len(ss.m))
	for _, s := range ss.m {
		all = append(all, s)
	}
	ss.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].lastSeen.Load() < all[j].lastSeen.Load() })

	cut := now.Add(-idleTTL).UnixNano()
	rest := all[:0:0]
	for _, s := range all {
		if idleTTL > 0 && s.lastSeen.Load() < cut {
			idle = append(idle, s)
			continue
		}
		rest = append(rest, s)
	}
	if maxOpen > 0 && len(rest) > maxOpen {
		lru = rest[:len(rest)-maxOpen]
	}
	return idle, lru
}

// evict disposes stale sessions and reports how many went.
func (s *Server) evict(now time.Time) int {
	idle, lru := s.sessions.stale(now, s.idleTTL, s.maxOpen)
	for _, sess := range idle {
		s.dispose(sess, "idle")
	}
	for _, sess := range lru {
		s.dispose(sess, "lru")
	}
	return len(idle) + len(lru)
}

func (s *Server) dispose(sess *session, cause string) {
	sess.mu.Lock()
	sess.form.Dispose()
	sess.mu.Unlock()
	metrics.FormEvictTotal.WithLabelValues(cause).Inc()
	s.log.Infow("form evicted", "form", sess.kind, "session", sess.id, "cause", cause)
}

// RunEvictor evicts stale sessions every interval until ctx is done.
func (s *Server) RunEvictor(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			s.evict(now)
		}
	}
}
