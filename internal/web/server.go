// internal/web/server.go
//
// Roster – Web host.
//
/*
Context
--------
The forms are UI-agnostic; this package puts them in a browser.

  GET  /                     index: counts, lists, links to new forms
  GET  /forms/{kind}/new     open a form, redirect to its session URL
  GET  /forms/{kind}/{id}    render the open form
  POST /forms/{kind}/{id}    verify CSRF, dispatch the intent button
  GET  /api/classrooms       JSON snapshot of the classroom container
  GET  /api/courses          JSON snapshot of the course container
  GET  /metrics              Prometheus

POST always answers with a 303: back to the form after Save or Clear, to
the index after Close.  The posted body is attached to the form only while
the controller runs, so Save reads exactly what the user submitted.

A request body that cannot be parsed is answered with 400 before any
intent is dispatched; without a parsed body there is no intent to run.
*/
package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/roster/internal/controller"
	"github.com/yanizio/roster/internal/datacontainer"
	"github.com/yanizio/roster/internal/entity"
	"github.com/yanizio/roster/internal/form"
	"github.com/yanizio/roster/internal/head"
	"github.com/yanizio/roster/internal/middleware"
)

// ErrUnknownKind is returned by Open for kinds other than classroom and
// course.
var ErrUnknownKind = errors.New("unknown form kind")

// Options configures a Server.
type Options struct {
	MaxBodyBytes int64
	IdleTTL      time.Duration // zero disables idle eviction
	MaxOpen      int           // zero disables the open-session cap
}

// Server hosts the input forms over HTTP.
type Server struct {
	dc       *datacontainer.Container
	csrf     *form.CSRF
	log      *zap.SugaredLogger
	sessions *sessions
	maxBody  int64
	idleTTL  time.Duration
	maxOpen  int
}

// New returns a Server backed by dc.  Form definitions must already be
// registered.
func New(dc *datacontainer.Container, csrf *form.CSRF, log *zap.SugaredLogger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		dc:       dc,
		csrf:     csrf,
		log:      log,
		sessions: newSessions(),
		maxBody:  opts.MaxBodyBytes,
		idleTTL:  opts.IdleTTL,
		maxOpen:  opts.MaxOpen,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(s.log))
	r.Use(middleware.Security)

	r.Get("/", s.index)
	r.Route("/forms/{kind}", func(fr chi.Router) {
		fr.Get("/new", s.openForm)
		fr.Get("/{id}", s.showForm)
		fr.Post("/{id}", s.submitForm)
	})
	r.Get("/api/classrooms", s.listClassrooms)
	r.Get("/api/courses", s.listCourses)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Open creates a form session of kind and shows its window.
func (s *Server) Open(kind string) (string, error) {
	sess := &session{id: uuid.NewString(), kind: kind}

	// Present runs inside Handle, which the caller of handle already
	// serialises under sess.mu.
	presenter := controller.PresenterFunc(func(_ form.Window, err error) {
		sess.flash = err.Error()
	})

	switch kind {
	case entity.KindClassroom:
		def, ok := form.GetFormDef(form.ClassroomFormID)
		if !ok {
			return "", fmt.Errorf("form %q not registered", form.ClassroomFormID)
		}
		f, err := form.NewClassroomForm(def)
		if err != nil {
			return "", err
		}
		f.OnDispose(func() { s.sessions.drop(sess.id) })
		ctl := controller.NewClassroomController(f, s.dc.Classrooms, s.log, presenter)
		sess.form, sess.handle = f.Form, ctl.HandleText

	case entity.KindCourse:
		def, ok := form.GetFormDef(form.CourseFormID)
		if !ok {
			return "", fmt.Errorf("form %q not registered", form.CourseFormID)
		}
		f, err := form.NewCourseForm(def)
		if err != nil {
			return "", err
		}
		f.OnDispose(func() { s.sessions.drop(sess.id) })
		ctl := controller.NewCourseController(f, s.dc.Courses, s.dc.Classrooms, s.log, presenter)
		sess.form, sess.handle = f.Form, ctl.HandleText

	default:
		return "", ErrUnknownKind
	}

	sess.touch(time.Now())
	s.sessions.put(sess)
	s.log.Infow("form opened", "form", kind, "session", sess.id)
	return sess.id, nil
}

/*──────────────────────────── form handlers ────────────────────────────────*/

func (s *Server) openForm(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id, err := s.Open(kind)
	if errors.Is(err, ErrUnknownKind) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Errorw("open form failed", "form", kind, "err", err)
		http.Error(w, "form unavailable", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, formPath(kind, id), http.StatusSeeOther)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok || sess.kind != chi.URLParam(r, "kind") {
		http.NotFound(w, r)
		return nil, false
	}
	sess.touch(time.Now())
	return sess, true
}

func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	tok, err := s.csrf.Token()
	if err != nil {
		s.log.Errorw("csrf token failed", "err", err)
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	sess.mu.Lock()
	flash, notice := sess.take()
	body, err := form.RenderForm(sess.form.Def(), sess.form, form.RenderOptions{
		Action:    formPath(sess.kind, sess.id),
		CSRFToken: tok,
		Error:     flash,
		Notice:    notice,
	})
	sess.mu.Unlock()
	if err != nil {
		s.log.Errorw("render form failed", "form", sess.kind, "err", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	s.page(w, sess.form.Def().Title, body)
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	if s.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	}
	if err := r.ParseForm(); err != nil {
		s.log.Warnw("form body unreadable", "form", sess.kind, "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !s.csrf.Verify(r.PostForm.Get("csrf_token")) {
		http.Error(w, "security token invalid, reload the form", http.StatusForbidden)
		return
	}

	sess.mu.Lock()
	sess.form.Attach(postedValues(r.PostForm))
	outcome := sess.handle(r.PostForm.Get("intent"))
	sess.form.Detach()
	if outcome == controller.Saved {
		sess.notice = sess.form.Def().Title + ": saved."
	}
	sess.mu.Unlock()

	if outcome == controller.Closed {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, formPath(sess.kind, sess.id), http.StatusSeeOther)
}

// postedValues reads controls from an already parsed body.
type postedValues url.Values

func (p postedValues) Value(name string) (string, error) {
	return url.Values(p).Get(name), nil
}

func formPath(kind, id string) string { return "/forms/" + kind + "/" + id }

/*──────────────────────────── list handlers ────────────────────────────────*/

func (s *Server) listClassrooms(w http.ResponseWriter, _ *http.Request) {
	rooms := s.dc.Classrooms.All()
	out := make([]entity.ClassroomJSON, 0, len(rooms))
	for _, c := range rooms {
		out = append(out, c.JSON())
	}
	s.writeJSON(w, out)
}

func (s *Server) listCourses(w http.ResponseWriter, _ *http.Request) {
	courses := s.dc.Courses.All()
	out := make([]entity.CourseJSON, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.JSON())
	}
	s.writeJSON(w, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnw("json encode failed", "err", err)
	}
}

/*──────────────────────────── pages ────────────────────────────────────────*/

var pageTpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>{{.Head.Metas}}{{.Head.Title}}{{.Head.Links}}</head>
<body>
{{.Body}}
</body>
</html>`))

var indexTpl = template.Must(template.New("index").Parse(`<h1>Roster</h1>
<p><a href="/forms/classroom/new">Add classroom</a> · <a href="/forms/course/new">Add course</a></p>
<p>{{.OpenForms}} form(s) open.</p>
<h2>Classrooms ({{len .Classrooms}})</h2>
<ul>{{range .Classrooms}}<li>{{.}}</li>{{end}}</ul>
<h2>Courses ({{len .Courses}})</h2>
<ul>{{range .Courses}}<li>{{.CourseID}} {{.CourseName}} in {{.Classroom.RoomNumber}}</li>{{end}}</ul>`))

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	data := map[string]any{
		"OpenForms":  s.sessions.len(),
		"Classrooms": s.dc.Classrooms.All(),
		"Courses":    s.dc.Courses.All(),
	}
	var buf bytes.Buffer
	if err := indexTpl.Execute(&buf, data); err != nil {
		s.log.Errorw("render index failed", "err", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	s.page(w, "Roster", template.HTML(buf.String()))
}

func (s *Server) page(w http.ResponseWriter, title string, body template.HTML) {
	h := head.Defaults()
	h.SetTitle(title)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTpl.Execute(w, map[string]any{"Head": h, "Body": body}); err != nil {
		s.log.Warnw("write page failed", "err", err)
	}
}
