package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"notekeeper/db"
	"notekeeper/models"
)

// memStore is an in-memory Store with the same semantics as db.Store,
// including its sentinel errors and id-descending list order.
type memStore struct {
	mu         sync.Mutex
	users      map[int64]models.User
	userByName map[string]int64
	notes      map[int64]models.Note
	nextUserID int64
	nextNoteID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]models.User{},
		userByName: map[string]int64{},
		notes:      map[int64]models.Note{},
	}
}

func (s *memStore) CreateUser(_ context.Context, username, passwordHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.userByName[username]; exists {
		return 0, db.ErrDuplicate
	}
	s.nextUserID++
	id := s.nextUserID
	s.users[id] = models.User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.userByName[username] = id
	return id, nil
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.userByName[username]
	if !ok {
		return models.User{}, db.ErrNotFound
	}
	return s.users[id], nil
}

func (s *memStore) CreateNote(_ context.Context, ownerID int64, title, content string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNoteID++
	id := s.nextNoteID
	now := time.Now()
	s.notes[id] = models.Note{
		ID: id, OwnerUserID: ownerID, Title: title, Content: content,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (s *memStore) ListNotesByOwner(_ context.Context, ownerID int64) ([]models.NoteSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.NoteSummary{}
	for _, n := range s.notes {
		if n.OwnerUserID == ownerID {
			out = append(out, models.NoteSummary{
				ID: n.ID, Title: n.Title, Content: n.Content,
				CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memStore) GetNoteByID(_ context.Context, id int64) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return models.Note{}, db.ErrNotFound
	}
	return n, nil
}

func (s *memStore) UpdateNote(_ context.Context, id int64, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return db.ErrNotFound
	}
	n.Title = title
	n.Content = content
	n.UpdatedAt = time.Now()
	s.notes[id] = n
	return nil
}

func (s *memStore) DeleteNote(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, id)
	return nil
}
