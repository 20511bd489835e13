package handlers

import (
	"context"

	"notekeeper/models"
	"notekeeper/session"
)

// Store is the persistence surface the handlers need. *db.Store satisfies
// it; tests substitute an in-memory implementation.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	CreateNote(ctx context.Context, ownerID int64, title, content string) (int64, error)
	ListNotesByOwner(ctx context.Context, ownerID int64) ([]models.NoteSummary, error)
	GetNoteByID(ctx context.Context, id int64) (models.Note, error)
	UpdateNote(ctx context.Context, id int64, title, content string) error
	DeleteNote(ctx context.Context, id int64) error
}

type Handler struct {
	store    Store
	sessions *session.Manager
}

func New(store Store, sessions *session.Manager) *Handler {
	return &Handler{store: store, sessions: sessions}
}
