package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/gutenclean/pkg/gutenclean/lexicon"
)

// Store is a SQLite-backed lemma dictionary. It supplies exceptions and
// invariants that extend the built-in lexicon tables.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a lemma dictionary database for writing.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing lemma dictionary without writing to it:
// no journal mode change, no schema creation, and no -wal or -shm files.
func OpenReadOnly(ctx context.Context, path string) (*Store, error) {
	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro&immutable=1"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS lemma_exceptions (
	variant TEXT PRIMARY KEY,
	lemma TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS lemma_invariants (
	word TEXT PRIMARY KEY
);

CREATE INDEX IF NOT EXISTS idx_lemma_exceptions_lemma ON lemma_exceptions(lemma);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// PutException maps variant to lemma, replacing any previous mapping.
func (s *Store) PutException(ctx context.Context, variant, lemma string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO lemma_exceptions(variant, lemma) VALUES(?, ?)
ON CONFLICT(variant) DO UPDATE SET lemma = excluded.lemma`,
		strings.ToLower(variant), strings.ToLower(lemma))
	return err
}

// PutInvariant records a word that is its own lemma.
func (s *Store) PutInvariant(ctx context.Context, word string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO lemma_invariants(word) VALUES(?)`, strings.ToLower(word))
	return err
}

// LoadInto copies every stored entry into lex and returns how many rows were read.
func (s *Store) LoadInto(ctx context.Context, lex *lexicon.Lexicon) (int, error) {
	n := 0

	rows, err := s.db.QueryContext(ctx, `SELECT lemma, variant FROM lemma_exceptions ORDER BY lemma, variant`)
	if err != nil {
		return 0, fmt.Errorf("query exceptions: %w", err)
	}
	groups := make(map[string][]string)
	var order []string
	for rows.Next() {
		var lemma, variant string
		if err := rows.Scan(&lemma, &variant); err != nil {
			rows.Close()
			return 0, err
		}
		if _, ok := groups[lemma]; !ok {
			order = append(order, lemma)
		}
		groups[lemma] = append(groups[lemma], variant)
		n++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	for _, lemma := range order {
		lex.AddException(lemma, groups[lemma])
	}

	rows, err = s.db.QueryContext(ctx, `SELECT word FROM lemma_invariants ORDER BY word`)
	if err != nil {
		return 0, fmt.Errorf("query invariants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return 0, err
		}
		lex.AddInvariant(word)
		n++
	}
	return n, rows.Err()
}
