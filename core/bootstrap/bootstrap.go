package bootstrap

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/nomarddesk/moenry-bot/core/config"
	coredatabase "github.com/nomarddesk/moenry-bot/core/database"
	"github.com/nomarddesk/moenry-bot/core/logger"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coreconfig.JournalConfig) (*sqlx.DB, error)
	// Migrate applies the schema; it is skipped when nil.
	Migrate func(db *sqlx.DB, driver string) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
// DB is nil when no journal driver is configured.
type Result struct {
	DB *sqlx.DB
}

// Close releases the database, if any.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run initializes the logger and, when a journal driver is configured,
// connects to the database and applies migrations.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	jcfg := opts.Config.Journal
	driver := strings.ToLower(strings.TrimSpace(jcfg.Driver))
	if driver == "" {
		return &Result{}, nil
	}

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(jcfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	if opts.Migrate != nil {
		if err := opts.Migrate(db, driver); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
	}

	return &Result{DB: db}, nil
}
