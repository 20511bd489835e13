package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"notekeeper/db"
	"notekeeper/session"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is high enough to resist offline brute force on leaked hashes.
const bcryptCost = 12

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

// bcrypt only uses the first 72 bytes of its input and recent x/crypto
// versions reject anything longer outright; truncate so long passphrases
// hash and verify consistently.
const bcryptMaxPasswordLen = 72

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordLen {
		b = b[:bcryptMaxPasswordLen]
	}
	return b
}

// Fields are pointers so a missing or wrong-typed field is distinguishable
// from a present-but-empty string.
type credentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func decodeCredentials(r *http.Request) (string, string, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", "", false
	}
	if req.Username == nil || req.Password == nil {
		return "", "", false
	}
	return *req.Username, *req.Password, true
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := decodeCredentials(r)
	if !ok {
		respondErr(w, http.StatusBadRequest, "username and password required")
		return
	}
	// length limits count characters, not bytes
	if utf8.RuneCountInString(username) < minUsernameLen || utf8.RuneCountInString(password) < minPasswordLen {
		respondErr(w, http.StatusBadRequest, "weak username/password")
		return
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcryptCost)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	userID, err := h.store.CreateUser(r.Context(), username, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			respondErr(w, http.StatusConflict, "username already exists")
			return
		}
		respondErr(w, http.StatusInternalServerError, "internal error")
		return
	}

	// auto-login after register
	token := h.sessions.Create(userID, username)
	session.SetCookie(w, token)

	respondJSON(w, http.StatusCreated, map[string]any{"ok": true, "userId": userID})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := decodeCredentials(r)
	if !ok {
		respondErr(w, http.StatusBadRequest, "username and password required")
		return
	}

	// Unknown user and wrong password collapse to the same response so the
	// endpoint cannot be used to enumerate usernames.
	user, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondErr(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), bcryptInput(password)) != nil {
		respondErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := h.sessions.Create(user.ID, user.Username)
	session.SetCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Logout destroys the current session if one exists and always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := session.TokenFromRequest(r); ok {
		h.sessions.Destroy(token)
	}
	session.ClearCookie(w)
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
