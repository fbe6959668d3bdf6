package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
	"github.com/nomarddesk/moenry-bot/core/logger"
)

const connectTimeout = 5 * time.Second

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// sqlDriver maps the configured journal driver to the database/sql driver name.
func sqlDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case coreconfig.JournalPostgres:
		return "postgres", nil
	case coreconfig.JournalSQLite:
		return "sqlite", nil
	}
	return "", fmt.Errorf("db: unsupported driver %q", driver)
}

// Connect opens the database, configures the pool, and verifies connectivity.
func Connect(cfg coreconfig.JournalConfig) (*sqlx.DB, error) {
	name, err := sqlDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, name, cfg.DSN)
	took := logger.Took(start)
	if err != nil {
		logger.DB.Error("db connect failed",
			slog.String("event", "db.connect"),
			slog.String("driver", cfg.Driver),
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	maxConns := cfg.MaxConnections
	if name == "sqlite" {
		// one connection per SQLite file
		maxConns = 1
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns)
	}
	logger.DB.Debug("db pool configured",
		slog.String("event", "db.pool"),
		slog.Int("pool_open", maxConns),
	)

	logger.DB.Info("db connected",
		slog.String("event", "db.connect"),
		slog.String("driver", cfg.Driver),
		slog.Int("pool_open", maxConns),
		slog.Duration("duration", took),
	)
	return db, nil
}
