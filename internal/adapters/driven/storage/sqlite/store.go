package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/personaapply/personaapply/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/personaapply/personaapply/internal/core/domain"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.personaapply/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".personaapply", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL mode for better concurrency.
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

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{store: s}
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1).
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

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save stores or updates a document record.
func (s *documentStore) Save(ctx context.Context, doc *domain.UserDocument) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, type, filename, content, size_bytes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			type = excluded.type,
			filename = excluded.filename,
			content = excluded.content,
			size_bytes = excluded.size_bytes,
			updated_at = excluded.updated_at
	`, doc.ID, doc.OwnerID, string(doc.Type), doc.Filename, doc.Content,
		doc.SizeBytes, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.UserDocument, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, type, filename, content, size_bytes, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.UserDocument
	var docType string
	if err := row.Scan(&doc.ID, &doc.OwnerID, &docType, &doc.Filename, &doc.Content,
		&doc.SizeBytes, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.Type = domain.DocumentType(docType)

	return &doc, nil
}

// Delete removes a document record.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner returns all documents owned by a user, oldest first.
func (s *documentStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.UserDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, type, filename, content, size_bytes, created_at, updated_at
		FROM documents WHERE owner_id = ?
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.UserDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.UserDocument
		var docType string
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &docType, &doc.Filename, &doc.Content,
			&doc.SizeBytes, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Type = domain.DocumentType(docType)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// ==================== Profile Store ====================

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save stores or updates a profile.
func (s *profileStore) Save(ctx context.Context, profile *domain.UserProfile) error {
	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return fmt.Errorf("marshalling skills: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO profiles
			(uid, email, name, title, summary, skills, experience_years,
			 github_url, linkedin_url, portfolio_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			title = excluded.title,
			summary = excluded.summary,
			skills = excluded.skills,
			experience_years = excluded.experience_years,
			github_url = excluded.github_url,
			linkedin_url = excluded.linkedin_url,
			portfolio_url = excluded.portfolio_url,
			updated_at = excluded.updated_at
	`, profile.UID, profile.Email, profile.Name, profile.Title, profile.Summary,
		string(skillsJSON), profile.ExperienceYears,
		profile.GitHubURL, profile.LinkedInURL, profile.PortfolioURL,
		profile.CreatedAt, profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by UID.
func (s *profileStore) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT uid, email, name, title, summary, skills, experience_years,
		       github_url, linkedin_url, portfolio_url, created_at, updated_at
		FROM profiles WHERE uid = ?
	`, uid)

	var profile domain.UserProfile
	var skillsJSON string
	if err := row.Scan(&profile.UID, &profile.Email, &profile.Name, &profile.Title,
		&profile.Summary, &skillsJSON, &profile.ExperienceYears,
		&profile.GitHubURL, &profile.LinkedInURL, &profile.PortfolioURL,
		&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	if err := json.Unmarshal([]byte(skillsJSON), &profile.Skills); err != nil {
		return nil, fmt.Errorf("unmarshalling skills: %w", err)
	}

	return &profile, nil
}

// Delete removes a profile.
func (s *profileStore) Delete(ctx context.Context, uid string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM profiles WHERE uid = ?", uid)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
