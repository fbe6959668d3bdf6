package bootstrap

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunWithoutJournal(t *testing.T) {
	connected := false
	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		LoggerInit: noLogger,
		Connect: func(coreconfig.JournalConfig) (*sqlx.DB, error) {
			connected = true
			return nil, errors.New("unexpected")
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if connected || res.DB != nil {
		t.Error("database must not be opened without a journal driver")
	}
	if err := res.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestRunSQLiteAndMigrate(t *testing.T) {
	cfg := &coreconfig.Config{Journal: coreconfig.JournalConfig{
		Driver: coreconfig.JournalSQLite,
		DSN:    filepath.Join(t.TempDir(), "j.db"),
	}}
	var migrated string
	res, err := Run(Options{
		Config:     cfg,
		LoggerInit: noLogger,
		Migrate: func(db *sqlx.DB, driver string) error {
			migrated = driver
			return db.Ping()
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	t.Cleanup(func() { _ = res.Close() })
	if migrated != coreconfig.JournalSQLite {
		t.Errorf("migrate driver = %q", migrated)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(Options{}); err == nil {
		t.Error("expected error for nil config")
	}
	boom := errors.New("boom")
	_, err := Run(Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(*coreconfig.Config) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
