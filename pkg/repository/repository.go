// Package repository stores users, preferences, scraped content, embeddings and generated digests in sqlite.
package repository

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql migrations.sql
var schemaFS embed.FS

// schemaVersion is stored in PRAGMA user_version once schema and migrations are applied
const schemaVersion = 1

const defaultDSN = "file:curator.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=foreign_keys(1)"

// connection pragmas, busy_timeout lets concurrent writers wait instead of failing right away
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA cache_size = -64000",
	"PRAGMA temp_store = MEMORY",
	"PRAGMA busy_timeout = 5000",
}

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	User       *UserRepository
	Preference *PreferenceRepository
	Content    *ContentRepository
	Embedding  *EmbeddingRepository
	Summary    *SummaryRepository
	Setting    *SettingRepository
	DB         *sqlx.DB
}

// NewRepositories opens the database, brings its schema up to date and creates all repositories
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = defaultDSN
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	configurePool(db, cfg)

	if err := prepare(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		User:       NewUserRepository(db),
		Preference: NewPreferenceRepository(db),
		Content:    NewContentRepository(db),
		Embedding:  NewEmbeddingRepository(db),
		Summary:    NewSummaryRepository(db),
		Setting:    NewSettingRepository(db),
		DB:         db,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func configurePool(db *sqlx.DB, cfg Config) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// prepare applies pragmas, schema and migrations, then records the schema version
func prepare(ctx context.Context, db *sqlx.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("execute %s: %w", p, err)
		}
	}

	var current int
	if err := db.GetContext(ctx, &current, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if current != schemaVersion {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		lgr.Printf("[INFO] database schema upgraded from version %d to %d", current, schemaVersion)
	}
	return nil
}

// runMigrations applies indexes and triggers from migrations.sql, every statement is idempotent
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	data, err := schemaFS.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for i, stmt := range splitMigrationStatements(string(data)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			return fmt.Errorf("migration statement %d: %w", i+1, err)
		}
	}
	return nil
}

// splitMigrationStatements splits a SQL script into statements. A statement ends with a semicolon
// at the end of a line, semicolons inside BEGIN ... END blocks don't count.
func splitMigrationStatements(script string) []string {
	var (
		res   []string
		buf   strings.Builder
		depth int
	)
	flush := func() {
		if stmt := strings.TrimSpace(buf.String()); stmt != "" {
			res = append(res, stmt)
		}
		buf.Reset()
	}

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			if buf.Len() == 0 {
				continue
			}
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		switch upper := strings.ToUpper(trimmed); {
		case upper == "BEGIN" || strings.HasSuffix(upper, " BEGIN"):
			depth++
		case upper == "END;" && depth > 0:
			depth--
		}
		if depth == 0 && strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	flush()
	return res
}
