package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appmw "notekeeper/middleware"
	"notekeeper/session"

	"github.com/go-chi/chi/v5"
)

type testEnv struct {
	store    *memStore
	sessions *session.Manager
	router   http.Handler
}

// newTestEnv wires the handlers onto a router the same way main does,
// backed by the in-memory store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	sessions := session.New(time.Hour)
	h := New(store, sessions)

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth(sessions))
		r.Post("/notes", h.CreateNote)
		r.Get("/notes", h.ListNotes)
		r.Get("/notes/{id}", h.GetNote)
		r.Put("/notes/{id}", h.UpdateNote)
		r.Delete("/notes/{id}", h.DeleteNote)
	})

	return &testEnv{store: store, sessions: sessions, router: r}
}

func (e *testEnv) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// sessionCookie extracts the session cookie set by a register/login response.
func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerUser registers a user and returns the auto-login cookie.
func (e *testEnv) registerUser(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rr := e.do("POST", "/register", `{"username":"`+username+`","password":"`+password+`"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: got status %d: %s", username, rr.Code, rr.Body.String())
	}
	return sessionCookie(t, rr)
}
