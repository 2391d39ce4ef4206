// Package service implements the application core: job and worker
// lifecycles, duplicate detection, derived statistics, and JSON export, on
// top of a pluggable record store.
package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// Store is the persistence surface the services require. *sqlite.Backend
// satisfies it.
type Store interface {
	GetAll(collection string) ([]json.RawMessage, error)
	GetByID(collection, id string) (json.RawMessage, error)
	Add(collection, id string, record json.RawMessage) error
	Update(collection, id string, record json.RawMessage) error
	Delete(collection, id string) error
}

// dateLayout is the wire format for job dates and export file names.
const dateLayout = "2006-01-02"

// now is swapped in tests.
var now = time.Now

// sameFold reports whether two strings are equal ignoring case and
// surrounding whitespace.
func sameFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// exportName builds the export file name for an entity, e.g.
// "jobs_2024-06-01.json".
func exportName(entity string) string {
	return entity + "_" + now().Format(dateLayout) + ".json"
}

// ResolveWorkers maps a job's worker ids to worker records, silently
// skipping ids that no longer resolve. Deleting a worker leaves dangling
// references on jobs; they are filtered here rather than rewritten.
func ResolveWorkers(j types.Job, workers []types.Worker) []types.Worker {
	byID := make(map[string]types.Worker, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
	}

	var out []types.Worker
	for _, id := range j.WorkerIDs {
		if w, ok := byID[id]; ok {
			out = append(out, w)
		}
	}
	return out
}
