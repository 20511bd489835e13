package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"notekeeper/db"
	"notekeeper/middleware"
	"notekeeper/models"
	"notekeeper/session"

	"github.com/go-chi/chi/v5"
)

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func decodeNote(r *http.Request) (string, string, bool) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", "", false
	}
	if req.Title == nil || req.Content == nil {
		return "", "", false
	}
	return *req.Title, *req.Content, true
}

func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func identity(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, "unauthorized")
	}
	return ident, ok
}

// loadOwned fetches a note and enforces the ownership invariant: a missing
// note is 404 but a note owned by someone else is 403, so owners get a
// truthful answer while non-owners never see content.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request, id int64, userID int64) (models.Note, bool) {
	note, err := h.store.GetNoteByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "not found")
		} else {
			respondErr(w, http.StatusInternalServerError, "internal error")
		}
		return models.Note{}, false
	}
	if note.OwnerUserID != userID {
		respondErr(w, http.StatusForbidden, "forbidden")
		return models.Note{}, false
	}
	return note, true
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	title, content, ok := decodeNote(r)
	if !ok {
		respondErr(w, http.StatusBadRequest, "title and content required")
		return
	}

	id, err := h.store.CreateNote(r.Context(), ident.UserID, title, content)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"ok": true, "noteId": id})
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	notes, err := h.store.ListNotesByOwner(r.Context(), ident.UserID)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if notes == nil {
		notes = []models.NoteSummary{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "notes": notes})
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := noteID(r)
	if !ok {
		respondErr(w, http.StatusBadRequest, "bad id")
		return
	}
	note, ok := h.loadOwned(w, r, id, ident.UserID)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "note": map[string]any{
		"id":      note.ID,
		"title":   note.Title,
		"content": note.Content,
	}})
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := noteID(r)
	if !ok {
		respondErr(w, http.StatusBadRequest, "bad id")
		return
	}
	title, content, ok := decodeNote(r)
	if !ok {
		respondErr(w, http.StatusBadRequest, "title and content required")
		return
	}
	if _, ok := h.loadOwned(w, r, id, ident.UserID); !ok {
		return
	}

	if err := h.store.UpdateNote(r.Context(), id, title, content); err != nil {
		respondErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := noteID(r)
	if !ok {
		respondErr(w, http.StatusBadRequest, "bad id")
		return
	}
	if _, ok := h.loadOwned(w, r, id, ident.UserID); !ok {
		return
	}

	if err := h.store.DeleteNote(r.Context(), id); err != nil {
		respondErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
