package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/shaphero/digest-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed digest store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.DigestStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.digest/data/digests.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".digest", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "digests.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores a composed document with its child rows in one transaction.
// Documents are immutable, so a duplicate ID is an error rather than an
// upsert.
func (s *Store) Save(ctx context.Context, doc *domain.DigestDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("%w: document needs an ID", domain.ErrInvalidInput)
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM digests WHERE id = ?", doc.ID).Scan(&count); err != nil {
		return fmt.Errorf("checking for existing digest: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: digest %s", domain.ErrAlreadyExists, doc.ID)
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO digests (id, topic, title, subtitle, reading_time_minutes, source_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Topic, doc.Title, doc.Subtitle,
		doc.ReadingTimeMinutes, doc.SourceCount, createdAt)
	if err != nil {
		return fmt.Errorf("saving digest: %w", err)
	}

	if err := insertSections(ctx, tx, doc.ID, doc.Sections); err != nil {
		return err
	}
	if err := insertFindings(ctx, tx, doc.ID, doc.Findings); err != nil {
		return err
	}
	if err := insertReferences(ctx, tx, doc.ID, doc.References); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a document by ID, fully reassembled.
func (s *Store) Get(ctx context.Context, id string) (*domain.DigestDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, topic, title, subtitle, reading_time_minutes, source_count, created_at
		FROM digests WHERE id = ?
	`, id)

	var doc domain.DigestDocument
	var createdAt sql.NullTime
	if err := row.Scan(&doc.ID, &doc.Topic, &doc.Title, &doc.Subtitle,
		&doc.ReadingTimeMinutes, &doc.SourceCount, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning digest: %w", err)
	}
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}

	if err := s.loadChildren(ctx, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// List returns all stored documents, newest first, with child rows loaded.
func (s *Store) List(ctx context.Context) ([]domain.DigestDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, title, subtitle, reading_time_minutes, source_count, created_at
		FROM digests
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying digests: %w", err)
	}
	defer rows.Close()

	var docs []domain.DigestDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.DigestDocument
		var createdAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Topic, &doc.Title, &doc.Subtitle,
			&doc.ReadingTimeMinutes, &doc.SourceCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning digest: %w", err)
		}
		if createdAt.Valid {
			doc.CreatedAt = createdAt.Time
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating digests: %w", err)
	}

	for i := range docs {
		if err := s.loadChildren(ctx, &docs[i]); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

// Delete removes a document and its child rows.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM digests WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting digest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

func insertSections(ctx context.Context, tx *sql.Tx, digestID string, sections []domain.Section) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (digest_id, position, heading, body)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing section insert: %w", err)
	}
	defer stmt.Close()

	for i, sec := range sections {
		if _, err := stmt.ExecContext(ctx, digestID, i, sec.Heading, sec.Body); err != nil {
			return fmt.Errorf("saving section %d: %w", i, err)
		}
	}
	return nil
}

func insertFindings(ctx context.Context, tx *sql.Tx, digestID string, findings []domain.Finding) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (digest_id, position, statistic, context, source_quote, confidence)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing finding insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range findings {
		if _, err := stmt.ExecContext(ctx, digestID, i,
			f.Statistic, f.Context, f.SourceQuote, f.Confidence); err != nil {
			return fmt.Errorf("saving finding %d: %w", i, err)
		}
	}
	return nil
}

func insertReferences(ctx context.Context, tx *sql.Tx, digestID string, refs []domain.Reference) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO refs (digest_id, position, title, url, source_type)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing reference insert: %w", err)
	}
	defer stmt.Close()

	for i, ref := range refs {
		if _, err := stmt.ExecContext(ctx, digestID, i,
			ref.Title, ref.URL, string(ref.SourceType)); err != nil {
			return fmt.Errorf("saving reference %d: %w", i, err)
		}
	}
	return nil
}

// loadChildren fills in the sections, findings and references for doc,
// preserving the positions they were saved with.
func (s *Store) loadChildren(ctx context.Context, doc *domain.DigestDocument) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT heading, body FROM sections
		WHERE digest_id = ? ORDER BY position
	`, doc.ID)
	if err != nil {
		return fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.Heading, &sec.Body); err != nil {
			return fmt.Errorf("scanning section: %w", err)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating sections: %w", err)
	}

	frows, err := s.db.QueryContext(ctx, `
		SELECT statistic, context, source_quote, confidence FROM findings
		WHERE digest_id = ? ORDER BY position
	`, doc.ID)
	if err != nil {
		return fmt.Errorf("querying findings: %w", err)
	}
	defer frows.Close()
	for frows.Next() {
		var f domain.Finding
		if err := frows.Scan(&f.Statistic, &f.Context, &f.SourceQuote, &f.Confidence); err != nil {
			return fmt.Errorf("scanning finding: %w", err)
		}
		doc.Findings = append(doc.Findings, f)
	}
	if err := frows.Err(); err != nil {
		return fmt.Errorf("iterating findings: %w", err)
	}

	rrows, err := s.db.QueryContext(ctx, `
		SELECT title, url, source_type FROM refs
		WHERE digest_id = ? ORDER BY position
	`, doc.ID)
	if err != nil {
		return fmt.Errorf("querying references: %w", err)
	}
	defer rrows.Close()
	for rrows.Next() {
		var ref domain.Reference
		var sourceType string
		if err := rrows.Scan(&ref.Title, &ref.URL, &sourceType); err != nil {
			return fmt.Errorf("scanning reference: %w", err)
		}
		ref.SourceType = domain.SourceType(sourceType)
		doc.References = append(doc.References, ref)
	}
	if err := rrows.Err(); err != nil {
		return fmt.Errorf("iterating references: %w", err)
	}

	return nil
}
