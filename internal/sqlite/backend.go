// Package sqlite implements the local key-value store adapter on top of an
// embedded SQLite database. Each named collection maps to one table whose
// rows hold JSON-encoded records keyed by id.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "worktracker.db"

// collectionTables maps public collection names to SQLite table names.
var collectionTables = map[string]string{
	types.CollectionJobs:      "jobs",
	types.CollectionWorkers:   "workers",
	types.CollectionSyncQueue: "sync_queue",
}

// Backend is the durable store for all collections. The handle is opened
// lazily on first use and lives until Close. All operations either return a
// full result or an error; there are no partial reads.
type Backend struct {
	mu      sync.RWMutex
	open    bool
	dataDir string
	db      *sql.DB
}

// NewBackend creates a backend rooted at dataDir. No file is touched until
// the first operation or an explicit Open.
func NewBackend(dataDir string) *Backend {
	return &Backend{dataDir: dataDir}
}

// Open initializes the database handle and creates the collection tables if
// absent. Idempotent: a second call on an open backend is a no-op. Engine
// failures are reported as ErrStorageUnavailable.
func (b *Backend) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openLocked()
}

func (b *Backend) openLocked() error {
	if b.open {
		return nil
	}

	dataDir := b.dataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data dir: %v", types.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrStorageUnavailable, err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("%w: initializing schema: %v", types.ErrStorageUnavailable, err)
		}
	}

	b.db = db
	b.open = true
	return nil
}

// ensureOpen opens the backend if needed and returns with the read lock
// held. The caller must call b.mu.RUnlock when done.
func (b *Backend) ensureOpen() error {
	b.mu.RLock()
	if b.open {
		return nil
	}
	b.mu.RUnlock()

	if err := b.Open(); err != nil {
		// Leave the caller with a held read lock regardless, so the
		// deferred unlock stays balanced.
		b.mu.RLock()
		return err
	}
	b.mu.RLock()
	return nil
}

// Close releases the database handle. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.db = nil
	b.open = false
	return nil
}

// GetAll returns every record in the collection in insertion order.
func (b *Backend) GetAll(collection string) ([]json.RawMessage, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}
	if err := b.ensureOpen(); err != nil {
		b.mu.RUnlock()
		return nil, err
	}
	defer b.mu.RUnlock()

	rows, err := b.db.Query("SELECT record FROM " + table + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("scanning %s record: %w", collection, err)
		}
		records = append(records, json.RawMessage(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", collection, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

// GetByID returns the record with the given id, or ErrNotFound.
func (b *Backend) GetByID(collection, id string) (json.RawMessage, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := b.ensureOpen(); err != nil {
		b.mu.RUnlock()
		return nil, err
	}
	defer b.mu.RUnlock()

	var rec string
	err = b.db.QueryRow("SELECT record FROM "+table+" WHERE id = ?", id).Scan(&rec)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", collection, id, err)
	}
	return json.RawMessage(rec), nil
}

// Add inserts a new record. Returns ErrDuplicateKey if the id is already
// present in the collection.
func (b *Backend) Add(collection, id string, record json.RawMessage) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}
	if err := b.ensureOpen(); err != nil {
		b.mu.RUnlock()
		return err
	}
	defer b.mu.RUnlock()

	var exists int
	err = b.db.QueryRow("SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s %q", types.ErrDuplicateKey, collection, id)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking %s %s: %w", collection, id, err)
	}

	_, err = b.db.Exec(
		"INSERT INTO "+table+" (id, record, updated_at) VALUES (?, ?, ?)",
		id, string(record), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("adding %s %s: %w", collection, id, err)
	}
	return nil
}

// Update writes the record under the given id with upsert semantics: an
// existing record is replaced, a missing one is inserted. Callers that need
// strict update-only behavior must check existence with GetByID first.
func (b *Backend) Update(collection, id string, record json.RawMessage) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}
	if err := b.ensureOpen(); err != nil {
		b.mu.RUnlock()
		return err
	}
	defer b.mu.RUnlock()

	_, err = b.db.Exec(`
		INSERT INTO `+table+` (id, record, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			record = excluded.record,
			updated_at = excluded.updated_at`,
		id, string(record), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", collection, id, err)
	}
	return nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op, so the call is idempotent.
func (b *Backend) Delete(collection, id string) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}
	if err := b.ensureOpen(); err != nil {
		b.mu.RUnlock()
		return err
	}
	defer b.mu.RUnlock()

	if _, err := b.db.Exec("DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting %s %s: %w", collection, id, err)
	}
	return nil
}

// Count returns the number of records in the collection.
func (b *Backend) Count(collection string) (int, error) {
	table, err := tableFor(collection)
	if err != nil {
		return 0, err
	}
	if err := b.ensureOpen(); err != nil {
		b.mu.RUnlock()
		return 0, err
	}
	defer b.mu.RUnlock()

	var n int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", collection, err)
	}
	return n, nil
}

// Reset destroys the database file and recreates the schema from scratch.
// Returns ErrDatabaseLocked when the file cannot be removed because another
// session still holds it; the caller should surface that as an actionable
// message (close other sessions and retry).
func (b *Backend) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("%w: %v", types.ErrDatabaseLocked, err)
		}
		b.db = nil
		b.open = false
	}

	path := filepath.Join(b.dataDir, dbFileName)
	for _, f := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", types.ErrDatabaseLocked, err)
		}
	}

	return b.openLocked()
}

// tableFor resolves a public collection name to its SQLite table, guarding
// against unknown collections (and, incidentally, SQL injection through the
// table position).
func tableFor(collection string) (string, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrStoreNotFound, collection)
	}
	return table, nil
}
