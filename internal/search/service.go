package search

import (
	"fmt"
	"sort"
	"sync"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// Service filters jobs and workers by a fuzzy term, caching results until
// the underlying data changes. Callers pass a monotonically increasing data
// version with each query; a query at a newer version drops every cached
// entry from older versions.
type Service struct {
	mu      sync.Mutex
	version uint64
	cache   map[string][]string // key -> matching ids, in result order
}

// NewService returns a Service with an empty cache.
func NewService() *Service {
	return &Service{cache: map[string][]string{}}
}

// Stats summarizes a filter run.
type Stats struct {
	Total    int    `json:"total"`
	Filtered int    `json:"filtered"`
	Term     string `json:"term"`
}

// Jobs returns the jobs matching term and status. The term is matched
// against title, description, and the names of assigned workers; status
// filters exactly when non-empty. Results whose title matches come first,
// then by newest creation time.
func (s *Service) Jobs(jobs []types.Job, workers []types.Worker, term, status string, version uint64) []types.Job {
	key := fmt.Sprintf("jobs|%d|%s|%s", version, Normalize(term), status)
	byID := make(map[string]types.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	if ids, ok := s.cached(version, key); ok {
		return jobsByIDs(ids, byID)
	}

	names := make(map[string]string, len(workers))
	for _, w := range workers {
		names[w.ID] = w.Name
	}

	var titleHits, otherHits []types.Job
	for _, j := range jobs {
		if status != "" && j.Status != status {
			continue
		}
		switch {
		case Match(j.Title, term):
			titleHits = append(titleHits, j)
		case Match(j.Description, term) || workerNameMatches(j, names, term):
			otherHits = append(otherHits, j)
		}
	}

	byNewest := func(list []types.Job) {
		sort.SliceStable(list, func(a, b int) bool {
			return list[a].SortTime().After(list[b].SortTime())
		})
	}
	byNewest(titleHits)
	byNewest(otherHits)

	matched := append(titleHits, otherHits...)
	s.store(version, key, jobIDs(matched))
	return matched
}

// Workers returns the workers whose name, specialty, email, or phone
// matches term. Name matches come first, each group sorted by name.
func (s *Service) Workers(workers []types.Worker, term string, version uint64) []types.Worker {
	key := fmt.Sprintf("workers|%d|%s", version, Normalize(term))
	byID := make(map[string]types.Worker, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
	}

	if ids, ok := s.cached(version, key); ok {
		return workersByIDs(ids, byID)
	}

	var nameHits, otherHits []types.Worker
	for _, w := range workers {
		switch {
		case Match(w.Name, term):
			nameHits = append(nameHits, w)
		case Match(w.Specialty, term), Match(w.Email, term), Match(w.Phone, term):
			otherHits = append(otherHits, w)
		}
	}

	byName := func(list []types.Worker) {
		sort.SliceStable(list, func(a, b int) bool {
			return Normalize(list[a].Name) < Normalize(list[b].Name)
		})
	}
	byName(nameHits)
	byName(otherHits)

	matched := append(nameHits, otherHits...)
	s.store(version, key, workerIDs(matched))
	return matched
}

// JobStats reports how many jobs survived the filter.
func (s *Service) JobStats(jobs []types.Job, workers []types.Worker, term, status string, version uint64) Stats {
	matched := s.Jobs(jobs, workers, term, status, version)
	return Stats{Total: len(jobs), Filtered: len(matched), Term: term}
}

func (s *Service) cached(version uint64, key string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version != s.version {
		return nil, false
	}
	ids, ok := s.cache[key]
	return ids, ok
}

func (s *Service) store(version uint64, key string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version > s.version {
		// Newer data invalidates everything cached so far.
		s.version = version
		s.cache = map[string][]string{}
	} else if version < s.version {
		return
	}
	s.cache[key] = ids
}

func workerNameMatches(j types.Job, names map[string]string, term string) bool {
	if term == "" {
		return true
	}
	for _, id := range j.WorkerIDs {
		if name, ok := names[id]; ok && Match(name, term) {
			return true
		}
	}
	return false
}

func jobIDs(jobs []types.Job) []string {
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	return ids
}

func jobsByIDs(ids []string, byID map[string]types.Job) []types.Job {
	out := make([]types.Job, 0, len(ids))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
		}
	}
	return out
}

func workerIDs(workers []types.Worker) []string {
	ids := make([]string, len(workers))
	for i, w := range workers {
		ids[i] = w.ID
	}
	return ids
}

func workersByIDs(ids []string, byID map[string]types.Worker) []types.Worker {
	out := make([]types.Worker, 0, len(ids))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			out = append(out, w)
		}
	}
	return out
}
