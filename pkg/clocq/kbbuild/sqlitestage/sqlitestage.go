// Package sqlitestage is the SQLite-backed kbbuild.StagingStore, for
// large dumps that do not fit comfortably in memory -- the on-disk half
// of the build's store split, adapted from the teacher's store/sqlite
// (WAL-mode open, schema-init-on-open), with a new schema for staged
// nodes and facts instead of news documents.
package sqlitestage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

// Store is a SQLite-backed staging store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) a SQLite staging database at path with
// WAL mode enabled, mirroring the teacher's sqlite.OpenSQLite.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestage: open: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestage: enable WAL: %w", err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestage: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS entity_nodes (
	external_id TEXT PRIMARY KEY,
	code INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pred_nodes (
	external_id TEXT PRIMARY KEY,
	code INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS literal_nodes (
	value TEXT PRIMARY KEY,
	code INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS facts (
	fact_seq INTEGER NOT NULL,
	position INTEGER NOT NULL,
	code INTEGER NOT NULL,
	PRIMARY KEY(fact_seq, position)
);
CREATE TABLE IF NOT EXISTS counters (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO counters(name, value) VALUES ('entity', ?), ('predicate', ?), ('literal', ?), ('fact_seq', 0)
ON CONFLICT(name) DO NOTHING
`, int64(kbindex.EntityMin), int64(kbindex.PredicateMin), int64(-1))
	return err
}

// Close implements kbbuild.StagingStore.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) register(ctx context.Context, table, column, key string, counter string, step int64) (kbindex.Code, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, fmt.Sprintf("SELECT code FROM %s WHERE %s = ?", table, column), key).Scan(&existing)
	if err == nil {
		return kbindex.Code(existing), tx.Commit()
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	var next int64
	if err := tx.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = ?", counter).Scan(&next); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE counters SET value = ? WHERE name = ?", next+step, counter); err != nil {
		return 0, err
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s, code) VALUES (?, ?)", table, column)
	if _, err := tx.ExecContext(ctx, insert, key, next); err != nil {
		return 0, err
	}
	return kbindex.Code(next), tx.Commit()
}

// RegisterEntity implements kbbuild.StagingStore.
func (s *Store) RegisterEntity(externalID string) (kbindex.Code, error) {
	return s.register(context.Background(), "entity_nodes", "external_id", externalID, "entity", 1)
}

// RegisterPredicate implements kbbuild.StagingStore.
func (s *Store) RegisterPredicate(externalID string) (kbindex.Code, error) {
	return s.register(context.Background(), "pred_nodes", "external_id", externalID, "predicate", 1)
}

// RegisterLiteral implements kbbuild.StagingStore.
func (s *Store) RegisterLiteral(value string) (kbindex.Code, error) {
	return s.register(context.Background(), "literal_nodes", "value", value, "literal", -1)
}

// AddFact implements kbbuild.StagingStore.
func (s *Store) AddFact(codes []kbindex.Code) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = 'fact_seq'").Scan(&seq); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE counters SET value = value + 1 WHERE name = 'fact_seq'"); err != nil {
		return err
	}
	for pos, code := range codes {
		if _, err := tx.ExecContext(ctx, "INSERT INTO facts (fact_seq, position, code) VALUES (?, ?, ?)", seq, pos, int64(code)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) nodeMap(table, column string) (map[string]kbindex.Code, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT %s, code FROM %s", column, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]kbindex.Code)
	for rows.Next() {
		var key string
		var code int64
		if err := rows.Scan(&key, &code); err != nil {
			return nil, err
		}
		out[key] = kbindex.Code(code)
	}
	return out, rows.Err()
}

// Entities implements kbbuild.StagingStore.
func (s *Store) Entities() (map[string]kbindex.Code, error) {
	return s.nodeMap("entity_nodes", "external_id")
}

// Predicates implements kbbuild.StagingStore.
func (s *Store) Predicates() (map[string]kbindex.Code, error) {
	return s.nodeMap("pred_nodes", "external_id")
}

// Literals implements kbbuild.StagingStore.
func (s *Store) Literals() (map[string]kbindex.Code, error) {
	return s.nodeMap("literal_nodes", "value")
}

// Facts implements kbbuild.StagingStore.
func (s *Store) Facts() ([][]kbindex.Code, error) {
	rows, err := s.db.Query("SELECT fact_seq, position, code FROM facts ORDER BY fact_seq, position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byFact := make(map[int64][]kbindex.Code)
	var order []int64
	seen := make(map[int64]struct{})
	for rows.Next() {
		var seq, pos, code int64
		if err := rows.Scan(&seq, &pos, &code); err != nil {
			return nil, err
		}
		if _, ok := seen[seq]; !ok {
			seen[seq] = struct{}{}
			order = append(order, seq)
		}
		byFact[seq] = append(byFact[seq], kbindex.Code(code))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([][]kbindex.Code, len(order))
	for i, seq := range order {
		out[i] = byFact[seq]
	}
	return out, nil
}
