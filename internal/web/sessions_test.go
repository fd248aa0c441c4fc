// internal/web/sessions_test.go

package web

import (
	"context"
	"testing"
	"time"

	"github.com/yanizio/roster/internal/datacontainer"
	"github.com/yanizio/roster/internal/form"
)

func newEvictServer(t *testing.T, ttl time.Duration, maxOpen int) *Server {
	t.Helper()
	if err := form.RegisterDefaults(); err != nil {
		t.Fatalf("RegisterDefaults: %v", err)
	}
	c, _ := form.NewCSRF(nil)
	return New(datacontainer.New(), c, nil, Options{IdleTTL: ttl, MaxOpen: maxOpen})
}

func TestEvict_Idle(t *testing.T) {
	s := newEvictServer(t, time.Minute, 0)
	old, _ := s.Open("classroom")
	fresh, _ := s.Open("course")

	sess, _ := s.sessions.get(old)
	sess.touch(time.Now().Add(-2 * time.Minute))

	if n := s.evict(time.Now()); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if _, ok := s.sessions.get(old); ok {
		t.Fatal("idle session kept")
	}
	if _, ok := s.sessions.get(fresh); !ok {
		t.Fatal("fresh session evicted")
	}
	if !sess.form.Disposed() {
		t.Fatal("evicted form not disposed")
	}
}

func TestEvict_LRU(t *testing.T) {
	s := newEvictServer(t, 0, 2)
	base := time.Now()
	ids := make([]string, 3)
	for i := range ids {
		ids[i], _ = s.Open("classroom")
		sess, _ := s.sessions.get(ids[i])
		sess.touch(base.Add(time.Duration(i) * time.Second))
	}

	if n := s.evict(base.Add(time.Hour)); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if _, ok := s.sessions.get(ids[0]); ok {
		t.Fatal("least recently used session kept")
	}
	if s.sessions.len() != 2 {
		t.Fatalf("open = %d, want 2", s.sessions.len())
	}
}

func TestRunEvictor_StopsOnCancel(t *testing.T) {
	s := newEvictServer(t, time.Minute, 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunEvictor(ctx, time.Millisecond) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunEvictor = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunEvictor did not stop")
	}
}
