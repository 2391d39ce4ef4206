package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// historyIndex is the on-disk index of automatic backups, kept next to the
// snapshot files.
const historyIndex = "history.json"

// Entry describes one automatic backup on disk.
type Entry struct {
	ID        string    `json:"id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	File      string    `json:"file"`
	Jobs      int       `json:"jobs"`
	Workers   int       `json:"workers"`
}

// SaveAuto takes a snapshot and stores it in the history directory under
// the given reason ("scheduled", "before-restore", "manual"). When the
// history exceeds its cap the oldest entries are evicted, files included.
func (m *Manager) SaveAuto(reason string) (Entry, error) {
	snap, err := m.Snapshot(false)
	if err != nil {
		return Entry{}, err
	}
	snap.Metadata.ExportedBy = reason

	data, err := json.Marshal(snap)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadHistoryLocked(); err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
		Jobs:      len(snap.Data.Jobs),
		Workers:   len(snap.Data.Workers),
	}
	entry.File = "auto-" + entry.ID + ".json"

	if err := writeFileAtomic(filepath.Join(m.dir, entry.File), data); err != nil {
		return Entry{}, err
	}

	m.history = append([]Entry{entry}, m.history...)
	for len(m.history) > m.cap {
		evicted := m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		if err := os.Remove(filepath.Join(m.dir, evicted.File)); err != nil && !errIsNotExist(err) {
			log.Printf("[WARN] failed to remove evicted backup %s: %v", evicted.File, err)
		}
	}

	if err := m.saveHistoryLocked(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// History returns the automatic backups, newest first.
func (m *Manager) History() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadHistoryLocked(); err != nil {
		return nil, err
	}
	return append([]Entry(nil), m.history...), nil
}

// RestoreAuto restores the automatic backup with the given id.
func (m *Manager) RestoreAuto(id string, strategy Strategy) (Summary, error) {
	entry, err := m.find(id)
	if err != nil {
		return Summary{}, err
	}
	return m.ImportFile(filepath.Join(m.dir, entry.File), strategy)
}

// DeleteAuto removes one automatic backup, file and index entry both.
func (m *Manager) DeleteAuto(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadHistoryLocked(); err != nil {
		return err
	}

	for i, e := range m.history {
		if e.ID != id {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, e.File)); err != nil && !errIsNotExist(err) {
			return fmt.Errorf("removing backup file %s: %w", e.File, err)
		}
		m.history = append(m.history[:i], m.history[i+1:]...)
		return m.saveHistoryLocked()
	}
	return fmt.Errorf("backup %q: %w", id, types.ErrNotFound)
}

func (m *Manager) find(id string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadHistoryLocked(); err != nil {
		return Entry{}, err
	}
	for _, e := range m.history {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("backup %q: %w", id, types.ErrNotFound)
}

func (m *Manager) loadHistoryLocked() error {
	if m.loaded {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(m.dir, historyIndex))
	if errIsNotExist(err) {
		m.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading backup history: %w", err)
	}

	var history []Entry
	if err := json.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("decoding backup history: %w", err)
	}
	m.history = history
	m.loaded = true
	return nil
}

func (m *Manager) saveHistoryLocked() error {
	data, err := json.MarshalIndent(m.history, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup history: %w", err)
	}
	return writeFileAtomic(filepath.Join(m.dir, historyIndex), data)
}
