package store

import (
	"context"
	"fmt"
	"time"

	"github.com/karthikurao/portfolio/internal/contact"
)

type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveMessage archives a contact submission. It satisfies contact.Archive.
func (s *Store) SaveMessage(ctx context.Context, sub contact.Submission, delivered bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, name, email, message, delivered, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Email, sub.Message, delivered, stamp(sub.CreatedAt))
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

func (s *Store) Messages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, delivered, created_at
		FROM messages
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var ts string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Delivered, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = parseStamp(ts)
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMessage removes a message and reports whether it existed.
func (s *Store) DeleteMessage(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
