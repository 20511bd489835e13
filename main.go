package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"notekeeper/db"
	"notekeeper/handlers"
	appmw "notekeeper/middleware"
	"notekeeper/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

const defaultSessionTTL = 14 * 24 * time.Hour

func newRouter(h *handlers.Handler, sessions *session.Manager) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", h.Health)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	// Logout sits outside the gate so a second logout still succeeds.
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth(sessions))
		r.Post("/notes", h.CreateNote)
		r.Get("/notes", h.ListNotes)
		r.Get("/notes/{id}", h.GetNote)
		r.Put("/notes/{id}", h.UpdateNote)
		r.Delete("/notes/{id}", h.DeleteNote)
	})

	return r
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dsn := os.Getenv("DSN")
	if dsn == "" {
		logger.Error("DSN not set")
		os.Exit(1)
	}

	store, err := db.Open(dsn)
	if err != nil {
		logger.Error("db open failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Bootstrap(context.Background()); err != nil {
		logger.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	ttl := defaultSessionTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid SESSION_TTL", "value", v, "err", err)
			os.Exit(1)
		}
		ttl = d
	}
	sessions := session.New(ttl)

	h := handlers.New(store, sessions)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":3000"
	}

	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, newRouter(h, sessions)); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
