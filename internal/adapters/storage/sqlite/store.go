// Package sqlite implements durable local storage for facts and thread
// history on a single SQLite file. It is the storage backend for deployments
// that need restart survival without a cloud dependency.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/concilio-labs/concilio/internal/domain"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS facts (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	content    TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (namespace, key)
);

CREATE TABLE IF NOT EXISTS thread_messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	thread_key TEXT NOT NULL,
	message_id TEXT NOT NULL,
	author     TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_thread_messages_key
	ON thread_messages(thread_key, id);
`

// Store implements domain.FactStore and domain.ThreadStore on one database.
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the database at path and bootstraps the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite store: creating %s: %w", dir, err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: opening %s: %w", path, err)
	}

	// WAL keeps concurrent sessions from blocking each other on writes to
	// different keys.
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put upserts a record; the newest write for a key wins.
func (s *Store) Put(ctx context.Context, namespace, key string, rec domain.StoryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO facts (namespace, key, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key)
		DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		namespace, key, rec.Content, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite Put %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, namespace, key string) (domain.StoryRecord, bool, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM facts WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return domain.StoryRecord{}, false, nil
	}
	if err != nil {
		return domain.StoryRecord{}, false, fmt.Errorf("sqlite Get %s/%s: %w", namespace, key, err)
	}
	return domain.StoryRecord{Content: content}, true, nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.ThreadMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO thread_messages (thread_key, message_id, author, text, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(msg.ThreadKey), string(msg.ID), string(msg.Author), msg.Text,
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite AppendMessage %s: %w", msg.ThreadKey, err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, key domain.ThreadKey) ([]*domain.ThreadMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, author, text, created_at
		FROM thread_messages
		WHERE thread_key = ?
		ORDER BY id ASC`,
		string(key),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite History %s: %w", key, err)
	}
	defer rows.Close()

	var out []*domain.ThreadMessage
	for rows.Next() {
		var (
			msgID, author, text, createdAt string
		)
		if err := rows.Scan(&msgID, &author, &text, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite History scan: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite History timestamp: %w", err)
		}

		out = append(out, &domain.ThreadMessage{
			ID:        domain.MessageID(msgID),
			ThreadKey: key,
			Author:    domain.Role(author),
			Text:      text,
			CreatedAt: ts,
		})
	}
	return out, rows.Err()
}
