package diagnostics

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// CorrelationStore persists cross-compilation diagnostic correlations so
// that a diagnostic from one compile can be linked to one from a later
// compile of the same project (e.g. "this ambiguity first appeared after
// that change").
type CorrelationStore struct {
	db *sql.DB
}

// OpenCorrelationStore opens (and migrates) a correlation database at
// path. Use ":memory:" for an ephemeral store.
func OpenCorrelationStore(path string) (*CorrelationStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &CorrelationStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *CorrelationStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS diagnostics (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			column INTEGER NOT NULL,
			summary TEXT NOT NULL,
			cascade_root TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_diagnostics_location ON diagnostics(file, line, column);
	`)
	return err
}

// Record persists d for later correlation lookups.
func (s *CorrelationStore) Record(d *Diagnostic) error {
	var cascadeRoot any
	if d.CascadeRoot != nil {
		cascadeRoot = d.CascadeRoot.String()
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO diagnostics (id, code, file, line, column, summary, cascade_root) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID.String(), d.Code.String(), d.PrimarySpan.File, d.PrimarySpan.Line, d.PrimarySpan.Column, d.Summary, cascadeRoot,
	)
	return err
}

// CorrelatedAt returns every previously recorded diagnostic id at the
// same file:line:column as span -- the cross-compilation correlation
// lookup the spec's semantic context draws on.
func (s *CorrelationStore) CorrelatedAt(span Span) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT id FROM diagnostics WHERE file = ? AND line = ? AND column = ?`,
		span.File, span.Line, span.Column,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying database handle.
func (s *CorrelationStore) Close() error {
	return s.db.Close()
}
