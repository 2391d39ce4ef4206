// Package backup creates, validates, and restores full-data snapshots, and
// keeps a bounded rolling history of automatic backups on disk.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/michelsoler74/work-tracker-pro/internal/service"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// appName stamps snapshot metadata.
const appName = "WorkTracker Pro"

// Strategy selects how restored records merge with existing ones.
type Strategy string

const (
	// StrategySkip keeps existing records and only inserts ids not present.
	StrategySkip Strategy = "skip"
	// StrategyOverwrite replaces existing records wholesale.
	StrategyOverwrite Strategy = "overwrite"
	// StrategyAdd inserts records as-is; a record whose id already exists
	// is duplicated under a fresh id.
	StrategyAdd Strategy = "add"
)

// ValidStrategy reports whether s is a known merge strategy.
func ValidStrategy(s Strategy) bool {
	switch s {
	case StrategySkip, StrategyOverwrite, StrategyAdd:
		return true
	}
	return false
}

// Manager produces snapshots from the services, restores them back, and
// owns the automatic-backup history directory.
type Manager struct {
	mu       sync.Mutex
	jobs     *service.Jobs
	workers  *service.Workers
	settings map[string]string
	dir      string
	cap      int
	interval time.Duration
	history  []Entry // newest first
	loaded   bool
	timer    *time.Timer
}

// NewManager wires a Manager over the two services. Automatic backups are
// written under dir; cfg supplies the history cap and interval.
func NewManager(jobs *service.Jobs, workers *service.Workers, settings map[string]string, dir string, cfg types.Config) *Manager {
	return &Manager{
		jobs:     jobs,
		workers:  workers,
		settings: settings,
		dir:      dir,
		cap:      cfg.GetMaxAutoBackups(),
		interval: time.Duration(cfg.GetBackupIntervalHours()) * time.Hour,
	}
}

// Snapshot serializes the full current state of both collections. With
// stripImages set, attached images and profile photos are dropped from the
// copy, which keeps snapshot files small.
func (m *Manager) Snapshot(stripImages bool) (types.Snapshot, error) {
	jobs, err := m.jobs.All()
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("snapshotting jobs: %w", err)
	}
	workers, err := m.workers.All()
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("snapshotting workers: %w", err)
	}

	if stripImages {
		for i := range jobs {
			jobs[i].Images = nil
		}
		for i := range workers {
			workers[i].ProfileImage = ""
		}
	}

	settings := make(map[string]string, len(m.settings))
	for k, v := range m.settings {
		settings[k] = v
	}

	return types.Snapshot{
		Version:   types.SnapshotVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metadata: types.SnapshotMetadata{
			AppName:      appName,
			ExportedBy:   "manual",
			TotalJobs:    len(jobs),
			TotalWorkers: len(workers),
		},
		Data: types.SnapshotData{Jobs: jobs, Workers: workers, Settings: settings},
	}, nil
}

// Export writes a snapshot file named work-tracker-backup-<date>.json into
// dir and returns its full path.
func (m *Manager) Export(dir string, stripImages bool) (string, error) {
	snap, err := m.Snapshot(stripImages)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	name := "work-tracker-backup-" + time.Now().Format("2006-01-02") + ".json"
	path := filepath.Join(dir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Report is the outcome of structural snapshot validation. Errors make the
// snapshot unrestorable; warnings do not.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the snapshot can be restored.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Validate checks a snapshot's structure without touching any data.
func Validate(snap types.Snapshot) Report {
	var r Report

	if snap.Version == "" {
		r.Errors = append(r.Errors, "missing version")
	} else if snap.Version != types.SnapshotVersion {
		r.Warnings = append(r.Warnings, fmt.Sprintf("version %s differs from %s", snap.Version, types.SnapshotVersion))
	}

	if snap.Timestamp == "" {
		r.Warnings = append(r.Warnings, "missing timestamp")
	} else if _, err := time.Parse(time.RFC3339, snap.Timestamp); err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("unparseable timestamp %q", snap.Timestamp))
	}

	if snap.Data.Jobs == nil {
		r.Errors = append(r.Errors, "missing jobs collection")
	}
	if snap.Data.Workers == nil {
		r.Errors = append(r.Errors, "missing workers collection")
	}

	workerIDs := map[string]bool{}
	for i, w := range snap.Data.Workers {
		if w.ID == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("worker %d: missing id", i))
		}
		if w.Name == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("worker %d: missing name", i))
		}
		workerIDs[w.ID] = true
	}

	for i, j := range snap.Data.Jobs {
		if j.ID == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("job %d: missing id", i))
		}
		if j.Title == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("job %d: missing title", i))
		}
		for _, wid := range j.WorkerIDs {
			if !workerIDs[wid] {
				r.Warnings = append(r.Warnings, fmt.Sprintf("job %s references unknown worker %s", j.ID, wid))
			}
		}
	}

	return r
}

// Summary counts what a restore actually did.
type Summary struct {
	JobsRestored    int
	WorkersRestored int
	Skipped         int
	Failed          int
	Warnings        []string
}

// Restore merges a snapshot into the live data using the given strategy.
// The snapshot is validated first; a structurally invalid one aborts before
// any mutation. A safety backup of the current state is saved beforehand so
// a bad restore can itself be rolled back. Workers are restored before jobs
// so job worker references resolve. Individual record failures are logged
// and counted, not fatal.
func (m *Manager) Restore(snap types.Snapshot, strategy Strategy) (Summary, error) {
	if !ValidStrategy(strategy) {
		return Summary{}, fmt.Errorf("unknown merge strategy %q", strategy)
	}

	report := Validate(snap)
	if !report.OK() {
		return Summary{}, fmt.Errorf("%w: %v", types.ErrBackupInvalid, report.Errors)
	}

	if _, err := m.SaveAuto("before-restore"); err != nil {
		return Summary{}, fmt.Errorf("saving safety backup: %w", err)
	}

	sum := Summary{Warnings: report.Warnings}

	for _, w := range snap.Data.Workers {
		switch m.restoreWorker(w, strategy) {
		case restored:
			sum.WorkersRestored++
		case skipped:
			sum.Skipped++
		case failed:
			sum.Failed++
		}
	}
	for _, j := range snap.Data.Jobs {
		switch m.restoreJob(j, strategy) {
		case restored:
			sum.JobsRestored++
		case skipped:
			sum.Skipped++
		case failed:
			sum.Failed++
		}
	}

	log.Printf("[INFO] restore done: %d workers, %d jobs, %d skipped, %d failed",
		sum.WorkersRestored, sum.JobsRestored, sum.Skipped, sum.Failed)
	return sum, nil
}

type restoreOutcome int

const (
	restored restoreOutcome = iota
	skipped
	failed
)

func (m *Manager) restoreWorker(w types.Worker, strategy Strategy) restoreOutcome {
	switch strategy {
	case StrategySkip:
		if _, err := m.workers.Get(w.ID); err == nil {
			return skipped
		}
	case StrategyAdd:
		// Only a colliding id gets a fresh one; ids without a
		// counterpart are inserted as-is.
		if _, err := m.workers.Get(w.ID); err == nil {
			w.ID = uuid.Must(uuid.NewV7()).String()
		}
	}
	if err := m.workers.Replace(w); err != nil {
		log.Printf("[WARN] restore: worker %s: %v", w.ID, err)
		return failed
	}
	return restored
}

func (m *Manager) restoreJob(j types.Job, strategy Strategy) restoreOutcome {
	switch strategy {
	case StrategySkip:
		if _, err := m.jobs.Get(j.ID); err == nil {
			return skipped
		}
	case StrategyAdd:
		if _, err := m.jobs.Get(j.ID); err == nil {
			j.ID = uuid.Must(uuid.NewV7()).String()
		}
	}
	if err := m.jobs.Replace(j); err != nil {
		log.Printf("[WARN] restore: job %s: %v", j.ID, err)
		return failed
	}
	return restored
}

// ImportFile reads a snapshot file and restores it.
func (m *Manager) ImportFile(path string, strategy Strategy) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading backup file: %w", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", types.ErrBackupInvalid, err)
	}
	return m.Restore(snap, strategy)
}

// ValidateFile reads a snapshot file and returns its validation report
// without restoring anything.
func (m *Manager) ValidateFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading backup file: %w", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Report{Errors: []string{fmt.Sprintf("not a snapshot: %v", err)}}, nil
	}
	return Validate(snap), nil
}

// StartAuto begins periodic automatic backups at the configured interval.
// Calling it again restarts the schedule.
func (m *Manager) StartAuto() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleLocked()
	log.Printf("[INFO] automatic backups every %s, keeping %d", m.interval, m.cap)
}

func (m *Manager) scheduleLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.interval, func() {
		if _, err := m.SaveAuto("scheduled"); err != nil {
			log.Printf("[WARN] automatic backup failed: %v", err)
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.timer != nil {
			m.scheduleLocked()
		}
	})
}

// StopAuto cancels the automatic-backup schedule.
func (m *Manager) StopAuto() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Stats summarizes the automatic-backup history.
type Stats struct {
	Count    int        `json:"count"`
	Cap      int        `json:"cap"`
	Newest   *time.Time `json:"newest,omitempty"`
	Oldest   *time.Time `json:"oldest,omitempty"`
	DirBytes int64      `json:"dirBytes"`
}

// HistoryStats reports how many automatic backups exist and how much disk
// they occupy.
func (m *Manager) HistoryStats() (Stats, error) {
	entries, err := m.History()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Count: len(entries), Cap: m.cap}
	if len(entries) > 0 {
		newest := entries[0].CreatedAt
		oldest := entries[len(entries)-1].CreatedAt
		stats.Newest = &newest
		stats.Oldest = &oldest
	}
	for _, e := range entries {
		if fi, err := os.Stat(filepath.Join(m.dir, e.File)); err == nil {
			stats.DirBytes += fi.Size()
		}
	}
	return stats, nil
}

// errIsNotExist unifies the not-found checks around history files.
func errIsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
