package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notekeeper/models"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// mysqlDupEntry is ER_DUP_ENTRY, raised on unique-key violations.
const mysqlDupEntry = 1062

// Store wraps the SQL connection and exposes typed query functions for
// users and notes. Storage-level failures are translated to the sentinel
// errors above so callers never see raw driver errors.
type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return &Store{db: conn}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Bootstrap creates the schema if it does not exist yet. Notes carry a
// cascading foreign key to their owner and an index for owner-scoped lists.
func (s *Store) Bootstrap(ctx context.Context) error {
	userTable := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	notesTable := `
	CREATE TABLE IF NOT EXISTS notes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		owner_user_id BIGINT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_notes_owner (owner_user_id),
		FOREIGN KEY (owner_user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err := s.db.ExecContext(ctx, userTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, notesTable); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?, ?)", username, passwordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user row; the foreign key cascades to the user's notes.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Store) CreateNote(ctx context.Context, ownerID int64, title, content string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (owner_user_id, title, content) VALUES (?, ?, ?)", ownerID, title, content)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) ListNotesByOwner(ctx context.Context, ownerID int64) ([]models.NoteSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, content, created_at, updated_at FROM notes WHERE owner_user_id = ? ORDER BY id DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	notes := []models.NoteSummary{}
	for rows.Next() {
		var n models.NoteSummary
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetNoteByID fetches by primary key regardless of owner; the handler is
// responsible for the ownership check afterward.
func (s *Store) GetNoteByID(ctx context.Context, id int64) (models.Note, error) {
	var n models.Note
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_user_id, title, content, created_at, updated_at FROM notes WHERE id = ?", id).
		Scan(&n.ID, &n.OwnerUserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, fmt.Errorf("select note: %w", err)
	}
	return n, nil
}

func (s *Store) UpdateNote(ctx context.Context, id int64, title, content string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", title, content, id)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
