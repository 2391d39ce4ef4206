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

// Jobs manages the job collection. All reads are served from an in-memory
// cache loaded on first use; every mutation writes through to the store and
// bumps the data version.
type Jobs struct {
	mu      sync.RWMutex
	store   Store
	cache   []types.Job
	version uint64
	ready   bool
}

// NewJobs creates the job service on top of store. No data is read until
// Init or the first operation.
func NewJobs(store Store) *Jobs {
	return &Jobs{store: store}
}

// Init loads the collection into the cache. Idempotent.
func (s *Jobs) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked()
}

func (s *Jobs) initLocked() error {
	if s.ready {
		return nil
	}

	records, err := s.store.GetAll(types.CollectionJobs)
	if err != nil {
		return fmt.Errorf("loading jobs: %w", err)
	}

	jobs := make([]types.Job, 0, len(records))
	for _, rec := range records {
		var j types.Job
		if err := json.Unmarshal(rec, &j); err != nil {
			log.Printf("[WARN] skipping unreadable job record: %v", err)
			continue
		}
		jobs = append(jobs, j)
	}

	s.cache = jobs
	s.version = 1
	s.ready = true
	return nil
}

// Version returns the current data version. It increases on every mutation
// and is the cache key for search results.
func (s *Jobs) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// All returns a copy of every job, in insertion order.
func (s *Jobs) All() ([]types.Job, error) {
	s.mu.RLock()
	if s.ready {
		defer s.mu.RUnlock()
		return cloneJobs(s.cache), nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return nil, err
	}
	return cloneJobs(s.cache), nil
}

// Get returns the job with the given id, or ErrNotFound.
func (s *Jobs) Get(id string) (types.Job, error) {
	jobs, err := s.All()
	if err != nil {
		return types.Job{}, err
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return types.Job{}, fmt.Errorf("job %q: %w", id, types.ErrNotFound)
}

// Add validates and persists a new job. An empty status defaults to
// pending; an empty id gets a generated UUID. A job whose title
// case-insensitively matches an existing one is rejected with ErrDuplicate.
func (s *Jobs) Add(j types.Job) (types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return types.Job{}, err
	}

	if j.Status == "" {
		j.Status = types.StatusPending
	}
	if res := validate.Job().Validate(validate.JobValues(j)); !res.IsValid {
		return types.Job{}, &types.ValidationError{Errors: res.Errors, Messages: res.Messages}
	}

	if err := s.checkDuplicateLocked(j); err != nil {
		return types.Job{}, err
	}

	if j.ID == "" {
		j.ID = uuid.Must(uuid.NewV7()).String()
	}
	ts := now().UTC()
	j.CreatedAt = ts
	j.UpdatedAt = ts

	if err := s.persistAdd(j); err != nil {
		return types.Job{}, err
	}

	s.cache = append(s.cache, j.Clone())
	s.version++
	return j, nil
}

// Update merges the patch into the stored job and persists the result.
// Empty patch fields keep their stored values; patch images are appended to
// the stored ones. Returns ErrNotFound for an unknown id.
func (s *Jobs) Update(id string, patch types.Job) (types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return types.Job{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return types.Job{}, fmt.Errorf("job %q: %w", id, types.ErrNotFound)
	}

	merged := s.cache[idx].Clone()
	if patch.Title != "" {
		merged.Title = patch.Title
	}
	if patch.Description != "" {
		merged.Description = patch.Description
	}
	if patch.Date != "" {
		merged.Date = patch.Date
	}
	if patch.Status != "" {
		merged.Status = patch.Status
	}
	if patch.WorkerIDs != nil {
		merged.WorkerIDs = append([]string(nil), patch.WorkerIDs...)
	}
	merged.Images = append(merged.Images, patch.Images...)

	if res := validate.Job().Validate(validate.JobValues(merged)); !res.IsValid {
		return types.Job{}, &types.ValidationError{Errors: res.Errors, Messages: res.Messages}
	}
	if err := s.checkDuplicateLocked(merged); err != nil {
		return types.Job{}, err
	}
	merged.UpdatedAt = now().UTC()

	if err := s.persistUpdate(merged); err != nil {
		return types.Job{}, err
	}

	s.cache[idx] = merged.Clone()
	s.version++
	return merged, nil
}

// Replace persists the job exactly as given, inserting it if absent. Used
// by backup restore, which must not merge into existing records.
func (s *Jobs) Replace(j types.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return err
	}
	if j.ID == "" {
		return types.ErrInvalidID
	}

	if err := s.persistUpdate(j); err != nil {
		return err
	}

	if idx := s.indexOf(j.ID); idx >= 0 {
		s.cache[idx] = j.Clone()
	} else {
		s.cache = append(s.cache, j.Clone())
	}
	s.version++
	return nil
}

// Delete removes the job. Deleting an unknown id is a no-op.
func (s *Jobs) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return err
	}

	if err := s.store.Delete(types.CollectionJobs, id); err != nil {
		log.Printf("[WARN] failed to delete job %s: %v", id, err)
		return fmt.Errorf("deleting job %s: %w", id, err)
	}

	if idx := s.indexOf(id); idx >= 0 {
		s.cache = append(s.cache[:idx], s.cache[idx+1:]...)
		s.version++
	}
	return nil
}

// Start moves the job to in-progress.
func (s *Jobs) Start(id string) (types.Job, error) {
	return s.setStatus(id, types.StatusInProgress)
}

// Complete moves the job to completed.
func (s *Jobs) Complete(id string) (types.Job, error) {
	return s.setStatus(id, types.StatusCompleted)
}

func (s *Jobs) setStatus(id, status string) (types.Job, error) {
	return s.Update(id, types.Job{Status: status})
}

// ByStatus returns the jobs with the given status.
func (s *Jobs) ByStatus(status string) ([]types.Job, error) {
	if !types.ValidStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, types.ErrInvalidStatus)
	}
	jobs, err := s.All()
	if err != nil {
		return nil, err
	}

	var out []types.Job
	for _, j := range jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

// Pending returns jobs not yet started.
func (s *Jobs) Pending() ([]types.Job, error) { return s.ByStatus(types.StatusPending) }

// InProgress returns jobs currently underway.
func (s *Jobs) InProgress() ([]types.Job, error) { return s.ByStatus(types.StatusInProgress) }

// Completed returns finished jobs.
func (s *Jobs) Completed() ([]types.Job, error) { return s.ByStatus(types.StatusCompleted) }

// ForWorker returns the jobs a worker is assigned to.
func (s *Jobs) ForWorker(workerID string) ([]types.Job, error) {
	jobs, err := s.All()
	if err != nil {
		return nil, err
	}

	var out []types.Job
	for _, j := range jobs {
		for _, id := range j.WorkerIDs {
			if id == workerID {
				out = append(out, j)
				break
			}
		}
	}
	return out, nil
}

// JobStats aggregates the collection by status.
type JobStats struct {
	Total      int     `json:"total"`
	Pending    int     `json:"pending"`
	InProgress int     `json:"inProgress"`
	Completed  int     `json:"completed"`
	// CompletionRate is a percentage in [0, 100].
	CompletionRate float64 `json:"completionRate"`
}

// Stats computes counts per status and the completion rate.
func (s *Jobs) Stats() (JobStats, error) {
	jobs, err := s.All()
	if err != nil {
		return JobStats{}, err
	}

	stats := JobStats{Total: len(jobs)}
	for _, j := range jobs {
		switch j.Status {
		case types.StatusPending:
			stats.Pending++
		case types.StatusInProgress:
			stats.InProgress++
		case types.StatusCompleted:
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}

// Export serializes every job to indented JSON, returning the suggested
// file name and the payload.
func (s *Jobs) Export() (string, []byte, error) {
	jobs, err := s.All()
	if err != nil {
		return "", nil, err
	}
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encoding jobs: %w", err)
	}
	return exportName("jobs"), data, nil
}

func (s *Jobs) persistAdd(j types.Job) error {
	rec, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("encoding job %s: %w", j.ID, err)
	}
	if err := s.store.Add(types.CollectionJobs, j.ID, rec); err != nil {
		if errors.Is(err, types.ErrDuplicateKey) {
			return fmt.Errorf("job id %s: %w", j.ID, types.ErrDuplicate)
		}
		log.Printf("[WARN] failed to persist job %s: %v", j.ID, err)
		return fmt.Errorf("adding job %s: %w", j.ID, err)
	}
	return nil
}

func (s *Jobs) persistUpdate(j types.Job) error {
	rec, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("encoding job %s: %w", j.ID, err)
	}
	if err := s.store.Update(types.CollectionJobs, j.ID, rec); err != nil {
		log.Printf("[WARN] failed to persist job %s: %v", j.ID, err)
		return fmt.Errorf("updating job %s: %w", j.ID, err)
	}
	return nil
}

// checkDuplicateLocked rejects a job whose title case-insensitively matches
// another job's, skipping the job's own record.
func (s *Jobs) checkDuplicateLocked(j types.Job) error {
	for _, existing := range s.cache {
		if existing.ID == j.ID {
			continue
		}
		if sameFold(existing.Title, j.Title) {
			return fmt.Errorf("job %q: %w", j.Title, types.ErrDuplicate)
		}
	}
	return nil
}

func (s *Jobs) indexOf(id string) int {
	for i, j := range s.cache {
		if j.ID == id {
			return i
		}
	}
	return -1
}

func cloneJobs(jobs []types.Job) []types.Job {
	out := make([]types.Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out
}
