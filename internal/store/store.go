// Package store keeps visitor metrics, section views and contact messages
// in sqlite. Visitor IPs are only ever stored as salted hashes.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is how timestamps are written; it sorts lexically.
const timeLayout = "2006-01-02 15:04:05"

// Retention is how long visitor records are kept.
const Retention = 365 * 24 * time.Hour

type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors(timestamp)`,
	`CREATE TABLE IF NOT EXISTS section_views (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		section_id TEXT NOT NULL,
		timestamp TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		delivered INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
}

// Open opens (creating if needed) the database at path. The IP hashing salt
// is random per process, so hashes cannot be joined across restarts.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}
	s := &Store{db: db, salt: salt, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// HashIP returns a truncated salted hash of ip, stable for this process.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// RandomToken returns a hex token suitable for session cookies.
func RandomToken() (string, error) { return randomHex(32) }

func stamp(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseStamp(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
