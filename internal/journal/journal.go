// Package journal records handled interactions for offline analysis.
//
// The journal is write-only: nothing it stores is read back while serving
// updates, and rows carry no user identifiers.
package journal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	coredatabase "github.com/nomarddesk/moenry-bot/core/database"
)

//go:embed migrations
var migrations embed.FS

// Kind is the update type that produced an event.
type Kind string

const (
	KindCommand  Kind = "command"
	KindCallback Kind = "callback"
)

// Event is one handled interaction.
type Event struct {
	ID        string    `db:"id"`
	UpdateID  int       `db:"update_id"`
	Kind      Kind      `db:"kind"`
	Action    string    `db:"action"`
	Screen    string    `db:"screen"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// Recorder persists events.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Event) error { return nil }

// Store writes events to an SQL database.
type Store struct {
	db *sqlx.DB
}

// Migrate applies the embedded schema for driver to db.
func Migrate(db *sqlx.DB, driver string) error {
	if err := coredatabase.RunMigrations(db, driver, migrations, "migrations/"+driver); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	return nil
}

// New wraps an open database whose schema is already migrated.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const insertEvent = `INSERT INTO interactions (id, update_id, kind, action, screen, status, created_at)
VALUES (:id, :update_id, :kind, :action, :screen, :status, :created_at)`

// Record inserts e, assigning an id and timestamp when missing.
func (s *Store) Record(ctx context.Context, e Event) error {
	if s == nil || s.db == nil {
		return errors.New("journal: store is closed")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := s.db.NamedExecContext(ctx, insertEvent, e); err != nil {
		return fmt.Errorf("journal: insert: %w", err)
	}
	return nil
}
