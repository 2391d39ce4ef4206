package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/michelsoler74/work-tracker-pro/internal/validate"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// Workers manages the worker collection. Mirrors Jobs: cached reads,
// write-through mutations, a version counter for search caching.
type Workers struct {
	mu      sync.RWMutex
	store   Store
	cache   []types.Worker
	version uint64
	ready   bool
}

// NewWorkers creates the worker service on top of store.
func NewWorkers(store Store) *Workers {
	return &Workers{store: store}
}

// Init loads the collection into the cache. Idempotent.
func (s *Workers) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked()
}

func (s *Workers) initLocked() error {
	if s.ready {
		return nil
	}

	records, err := s.store.GetAll(types.CollectionWorkers)
	if err != nil {
		return fmt.Errorf("loading workers: %w", err)
	}

	workers := make([]types.Worker, 0, len(records))
	for _, rec := range records {
		var w types.Worker
		if err := json.Unmarshal(rec, &w); err != nil {
			log.Printf("[WARN] skipping unreadable worker record: %v", err)
			continue
		}
		workers = append(workers, w)
	}

	s.cache = workers
	s.version = 1
	s.ready = true
	return nil
}

// Version returns the current data version.
func (s *Workers) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// All returns a copy of every worker, in insertion order.
func (s *Workers) All() ([]types.Worker, error) {
	s.mu.RLock()
	if s.ready {
		defer s.mu.RUnlock()
		return cloneWorkers(s.cache), nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return nil, err
	}
	return cloneWorkers(s.cache), nil
}

// Get returns the worker with the given id, or ErrNotFound.
func (s *Workers) Get(id string) (types.Worker, error) {
	workers, err := s.All()
	if err != nil {
		return types.Worker{}, err
	}
	for _, w := range workers {
		if w.ID == id {
			return w, nil
		}
	}
	return types.Worker{}, fmt.Errorf("worker %q: %w", id, types.ErrNotFound)
}

// Add validates and persists a new worker. Collisions on name, email, or
// phone with an existing worker are rejected with ErrDuplicate.
func (s *Workers) Add(w types.Worker) (types.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return types.Worker{}, err
	}

	if res := validate.Worker().Validate(validate.WorkerValues(w)); !res.IsValid {
		return types.Worker{}, &types.ValidationError{Errors: res.Errors, Messages: res.Messages}
	}
	if err := s.checkDuplicateLocked(w); err != nil {
		return types.Worker{}, err
	}

	if w.ID == "" {
		w.ID = uuid.Must(uuid.NewV7()).String()
	}
	ts := now().UTC()
	w.CreatedAt = ts
	w.UpdatedAt = ts

	if err := s.persistAdd(w); err != nil {
		return types.Worker{}, err
	}

	s.cache = append(s.cache, w.Clone())
	s.version++
	return w, nil
}

// Update merges the patch into the stored worker. Empty patch fields keep
// their stored values. Returns ErrNotFound for an unknown id.
func (s *Workers) Update(id string, patch types.Worker) (types.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return types.Worker{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return types.Worker{}, fmt.Errorf("worker %q: %w", id, types.ErrNotFound)
	}

	merged := s.cache[idx].Clone()
	if patch.Name != "" {
		merged.Name = patch.Name
	}
	if patch.Specialty != "" {
		merged.Specialty = patch.Specialty
	}
	if patch.Phone != "" {
		merged.Phone = patch.Phone
	}
	if patch.Email != "" {
		merged.Email = patch.Email
	}
	if patch.ProfileImage != "" {
		merged.ProfileImage = patch.ProfileImage
	}

	if res := validate.Worker().Validate(validate.WorkerValues(merged)); !res.IsValid {
		return types.Worker{}, &types.ValidationError{Errors: res.Errors, Messages: res.Messages}
	}
	if err := s.checkDuplicateLocked(merged); err != nil {
		return types.Worker{}, err
	}
	merged.UpdatedAt = now().UTC()

	if err := s.persistUpdate(merged); err != nil {
		return types.Worker{}, err
	}

	s.cache[idx] = merged.Clone()
	s.version++
	return merged, nil
}

// Replace persists the worker exactly as given, inserting it if absent.
// Used by backup restore.
func (s *Workers) Replace(w types.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return err
	}
	if w.ID == "" {
		return types.ErrInvalidID
	}

	if err := s.persistUpdate(w); err != nil {
		return err
	}

	if idx := s.indexOf(w.ID); idx >= 0 {
		s.cache[idx] = w.Clone()
	} else {
		s.cache = append(s.cache, w.Clone())
	}
	s.version++
	return nil
}

// Delete removes the worker. Jobs referencing the id keep the dangling
// reference; it is filtered out at resolve time. Deleting an unknown id is
// a no-op.
func (s *Workers) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return err
	}

	if err := s.store.Delete(types.CollectionWorkers, id); err != nil {
		log.Printf("[WARN] failed to delete worker %s: %v", id, err)
		return fmt.Errorf("deleting worker %s: %w", id, err)
	}

	if idx := s.indexOf(id); idx >= 0 {
		s.cache = append(s.cache[:idx], s.cache[idx+1:]...)
		s.version++
	}
	return nil
}

// AddHours adds worked hours to the worker's running total. Negative
// amounts are rejected.
func (s *Workers) AddHours(id string, hours float64) (types.Worker, error) {
	if hours < 0 {
		return types.Worker{}, fmt.Errorf("hours must not be negative: %v", hours)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return types.Worker{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return types.Worker{}, fmt.Errorf("worker %q: %w", id, types.ErrNotFound)
	}

	merged := s.cache[idx].Clone()
	merged.Hours += hours
	merged.UpdatedAt = now().UTC()

	if err := s.persistUpdate(merged); err != nil {
		return types.Worker{}, err
	}

	s.cache[idx] = merged.Clone()
	s.version++
	return merged, nil
}

// TopWorker identifies the worker with the most hours.
type TopWorker struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// WorkerStats aggregates the collection.
type WorkerStats struct {
	Total        int     `json:"total"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"`

	// Top is nil when no worker has logged hours.
	Top *TopWorker `json:"top,omitempty"`
}

// Stats computes hour totals and the top worker. Ties keep the earliest
// worker in insertion order.
func (s *Workers) Stats() (WorkerStats, error) {
	workers, err := s.All()
	if err != nil {
		return WorkerStats{}, err
	}

	stats := WorkerStats{Total: len(workers)}
	var top *types.Worker
	for i := range workers {
		stats.TotalHours += workers[i].Hours
		if workers[i].Hours > 0 && (top == nil || workers[i].Hours > top.Hours) {
			top = &workers[i]
		}
	}
	if stats.Total > 0 {
		stats.AverageHours = stats.TotalHours / float64(stats.Total)
	}
	if top != nil {
		stats.Top = &TopWorker{ID: top.ID, Name: top.Name, Hours: top.Hours}
	}
	return stats, nil
}

// Export serializes every worker to indented JSON, returning the suggested
// file name and the payload.
func (s *Workers) Export() (string, []byte, error) {
	workers, err := s.All()
	if err != nil {
		return "", nil, err
	}
	data, err := json.MarshalIndent(workers, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encoding workers: %w", err)
	}
	return exportName("workers"), data, nil
}

// checkDuplicateLocked rejects workers colliding with an existing record on
// name (case-insensitive), email (case-insensitive), or phone (exact). The
// record's own id is excluded so updates do not collide with themselves.
func (s *Workers) checkDuplicateLocked(w types.Worker) error {
	for _, existing := range s.cache {
		if existing.ID == w.ID {
			continue
		}
		switch {
		case sameFold(existing.Name, w.Name):
			return fmt.Errorf("worker name %q: %w", w.Name, types.ErrDuplicate)
		case w.Email != "" && sameFold(existing.Email, w.Email):
			return fmt.Errorf("worker email %q: %w", w.Email, types.ErrDuplicate)
		case w.Phone != "" && existing.Phone == w.Phone:
			return fmt.Errorf("worker phone %q: %w", w.Phone, types.ErrDuplicate)
		}
	}
	return nil
}

func (s *Workers) persistAdd(w types.Worker) error {
	rec, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding worker %s: %w", w.ID, err)
	}
	if err := s.store.Add(types.CollectionWorkers, w.ID, rec); err != nil {
		if errors.Is(err, types.ErrDuplicateKey) {
			return fmt.Errorf("worker id %s: %w", w.ID, types.ErrDuplicate)
		}
		log.Printf("[WARN] failed to persist worker %s: %v", w.ID, err)
		return fmt.Errorf("adding worker %s: %w", w.ID, err)
	}
	return nil
}

func (s *Workers) persistUpdate(w types.Worker) error {
	rec, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding worker %s: %w", w.ID, err)
	}
	if err := s.store.Update(types.CollectionWorkers, w.ID, rec); err != nil {
		log.Printf("[WARN] failed to persist worker %s: %v", w.ID, err)
		return fmt.Errorf("updating worker %s: %w", w.ID, err)
	}
	return nil
}

func (s *Workers) indexOf(id string) int {
	for i, w := range s.cache {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func cloneWorkers(workers []types.Worker) []types.Worker {
	out := make([]types.Worker, len(workers))
	for i, w := range workers {
		out[i] = w.Clone()
	}
	return out
}
