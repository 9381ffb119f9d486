package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/carver/wishforge/internal/domain/model"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
	hash         INTEGER PRIMARY KEY,
	name         TEXT NOT NULL,
	name_lower   TEXT NOT NULL,
	type_display TEXT NOT NULL,
	item_type    INTEGER NOT NULL,
	sub_type     INTEGER NOT NULL,
	tier_type    TEXT NOT NULL,
	description  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_name_lower ON items(name_lower);
`

// Store persists one catalog snapshot in sqlite, keyed by manifest version.
// It is the read-through cache behind the Catalog accessor; a run whose
// manifest version matches the stored one never re-downloads the catalog.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the snapshot database at path.
// Pass ":memory:" for an ephemeral store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Version returns the manifest version of the stored snapshot, or "" when
// no snapshot has been stored yet.
func (s *Store) Version(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read snapshot version: %w", err)
	}
	return v, nil
}

// Count returns the number of stored item definitions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshot items: %w", err)
	}
	return n, nil
}

// Replace atomically swaps the stored snapshot for the given items and
// records the manifest version they came from.
func (s *Store) Replace(ctx context.Context, version string, items []*model.ItemDefinition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (hash, name, name_lower, type_display, item_type, sub_type, tier_type, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			int64(item.Hash),
			item.Name,
			strings.ToLower(item.Name),
			item.TypeDisplayName,
			item.ItemType,
			item.SubType,
			item.TierTypeName,
			item.Description,
		)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", item.Hash, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, version); err != nil {
		return fmt.Errorf("record snapshot version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot replace: %w", err)
	}
	return nil
}

// SearchName returns all items whose display name contains text,
// case-insensitively. An empty result is not an error.
func (s *Store) SearchName(ctx context.Context, text string) ([]*model.ItemDefinition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, name, type_display, item_type, sub_type, tier_type, description
		FROM items
		WHERE instr(name_lower, ?) > 0`, strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("search snapshot: %w", err)
	}
	defer rows.Close()

	var out []*model.ItemDefinition
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search snapshot: %w", err)
	}
	return out, nil
}

// Lookup returns the item with the given hash, or ErrNotFound.
func (s *Store) Lookup(ctx context.Context, hash uint32) (*model.ItemDefinition, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hash, name, type_display, item_type, sub_type, tier_type, description
		FROM items
		WHERE hash = ?`, int64(hash))

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("hash %d: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.ItemDefinition, error) {
	var (
		hash int64
		item model.ItemDefinition
	)
	err := row.Scan(&hash, &item.Name, &item.TypeDisplayName, &item.ItemType,
		&item.SubType, &item.TierTypeName, &item.Description)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan snapshot row: %w", err)
	}
	item.Hash = uint32(hash)
	return &item, nil
}
