// internal/web/server_test.go
//
// End-to-end tests of the form host through its router.

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/yanizio/roster/internal/datacontainer"
	"github.com/yanizio/roster/internal/form"
)

type harness struct {
	t    *testing.T
	srv  *Server
	h    http.Handler
	dc   *datacontainer.Container
	csrf *form.CSRF
}

func newHarness(t *testing.T, maxBody int64) *harness {
	t.Helper()
	if err := form.RegisterDefaults(); err != nil {
		t.Fatalf("RegisterDefaults: %v", err)
	}
	dc := datacontainer.New()
	if err := dc.Seed([]datacontainer.ClassroomSeed{{RoomNumber: "R101", Type: "Lab", Capacity: "30"}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	c, err := form.NewCSRF(nil)
	if err != nil {
		t.Fatalf("NewCSRF: %v", err)
	}
	srv := New(dc, c, nil, Options{MaxBodyBytes: maxBody})
	return &harness{t: t, srv: srv, h: srv.Handler(), dc: dc, csrf: c}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.h.ServeHTTP(rr, req)
	return rr
}

func (h *harness) open(kind string) string {
	h.t.Helper()
	rr := h.do(httptest.NewRequest(http.MethodGet, "/forms/"+kind+"/new", nil))
	if rr.Code != http.StatusSeeOther {
		h.t.Fatalf("open %s: status %d", kind, rr.Code)
	}
	return rr.Header().Get("Location")
}

func (h *harness) post(path string, vals url.Values, withToken bool) *httptest.ResponseRecorder {
	h.t.Helper()
	if withToken {
		tok, err := h.csrf.Token()
		if err != nil {
			h.t.Fatalf("Token: %v", err)
		}
		vals.Set("csrf_token", tok)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func (h *harness) page(path string) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func TestClassroomForm_SaveAndReject(t *testing.T) {
	h := newHarness(t, 0)
	path := h.open("classroom")
	if !strings.HasPrefix(path, "/forms/classroom/") {
		t.Fatalf("Location = %q", path)
	}

	rr := h.post(path, url.Values{
		"room_number":  {"R201"},
		"type_of_room": {"Lecture Hall"},
		"capacity":     {"120"},
		"intent":       {"Save"},
	}, true)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != path {
		t.Fatalf("save: status %d location %q", rr.Code, rr.Header().Get("Location"))
	}
	if n := h.dc.Classrooms.Len(); n != 2 {
		t.Fatalf("classrooms = %d, want 2", n)
	}
	if body := h.page(path).Body.String(); !strings.Contains(body, `role="status"`) {
		t.Fatalf("saved notice missing:\n%s", body)
	}

	h.post(path, url.Values{
		"room_number":  {"R202"},
		"type_of_room": {"Lab"},
		"capacity":     {"lots"},
		"intent":       {"Save"},
	}, true)
	if n := h.dc.Classrooms.Len(); n != 2 {
		t.Fatalf("rejected save stored an entity: %d", n)
	}
	first := h.page(path).Body.String()
	if !strings.Contains(first, `role="alert"`) || !strings.Contains(first, "capacity") {
		t.Fatalf("error banner missing:\n%s", first)
	}
	if again := h.page(path).Body.String(); strings.Contains(again, `role="alert"`) {
		t.Fatal("error banner shown twice")
	}
}

func TestCourseForm_Save(t *testing.T) {
	h := newHarness(t, 0)
	path := h.open("course")

	if body := h.page(path).Body.String(); !strings.Contains(body, "R101") {
		t.Fatalf("classroom option missing:\n%s", body)
	}

	h.post(path, url.Values{
		"classroom":   {"0"},
		"course_id":   {"CS-101"},
		"course_name": {"Intro to Go"},
		"intent":      {"Save"},
	}, true)
	courses := h.dc.Courses.All()
	if len(courses) != 1 || courses[0].Classroom().RoomNumber() != "R101" {
		t.Fatalf("courses = %v", courses)
	}
}

func TestForm_CloseDropsSession(t *testing.T) {
	h := newHarness(t, 0)
	path := h.open("classroom")

	rr := h.post(path, url.Values{"intent": {"Close"}}, true)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("close: status %d location %q", rr.Code, rr.Header().Get("Location"))
	}
	if h.srv.sessions.len() != 0 {
		t.Fatal("session kept after close")
	}
	if rr := h.page(path); rr.Code != http.StatusNotFound {
		t.Fatalf("closed form: status %d, want 404", rr.Code)
	}
}

func TestForm_RejectsBadToken(t *testing.T) {
	h := newHarness(t, 0)
	path := h.open("classroom")

	rr := h.post(path, url.Values{
		"room_number":  {"R201"},
		"type_of_room": {"Lab"},
		"capacity":     {"10"},
		"intent":       {"Save"},
		"csrf_token":   {"forged"},
	}, false)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rr.Code)
	}
	if h.dc.Classrooms.Len() != 1 {
		t.Fatal("forged submit stored an entity")
	}
}

func TestForm_BodyTooLarge(t *testing.T) {
	h := newHarness(t, 64)
	path := h.open("classroom")

	rr := h.post(path, url.Values{
		"room_number": {strings.Repeat("x", 200)},
		"intent":      {"Save"},
	}, true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
}

func TestForm_UnknownKindAndSession(t *testing.T) {
	h := newHarness(t, 0)
	if rr := h.page("/forms/student/new"); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown kind: status %d", rr.Code)
	}
	if rr := h.page("/forms/classroom/nope"); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown session: status %d", rr.Code)
	}

	// A session is only reachable under its own kind.
	path := h.open("classroom")
	wrong := strings.Replace(path, "/classroom/", "/course/", 1)
	if rr := h.page(wrong); rr.Code != http.StatusNotFound {
		t.Fatalf("kind mismatch: status %d", rr.Code)
	}
}

func TestAPI_Lists(t *testing.T) {
	h := newHarness(t, 0)

	rr := h.page("/api/classrooms")
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	var rooms []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("rooms = %v", rooms)
	}

	var courses []map[string]any
	if err := json.Unmarshal(h.page("/api/courses").Body.Bytes(), &courses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(courses) != 0 {
		t.Fatalf("courses = %v", courses)
	}
}

func TestIndex(t *testing.T) {
	h := newHarness(t, 0)
	rr := h.page("/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"/forms/classroom/new", "/forms/course/new", "R101"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}
