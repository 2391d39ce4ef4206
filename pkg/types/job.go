package types

import "time"

// Job statuses. The string values are the wire format of the original
// application's data files, kept so existing backups restore cleanly.
const (
	StatusPending    = "Pendiente"
	StatusInProgress = "En Progreso"
	StatusCompleted  = "Completado"
)

// validStatuses is the set of recognized job status values.
var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// Statuses lists the job statuses in display order.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// ValidStatus reports whether s is a recognized job status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Job represents a unit of work assigned to zero or more workers.
// WorkerIDs are weak references: a job may name worker ids that no longer
// exist, and readers filter those out at resolution time.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // ISO date (2006-01-02)
	Status      string    `json:"status"`
	WorkerIDs   []string  `json:"workerIds"`
	Images      []string  `json:"images"` // data-URI encoded
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy. Slices are copied so the caller cannot mutate
// a cached job through the returned value.
func (j Job) Clone() Job {
	c := j
	if j.WorkerIDs != nil {
		c.WorkerIDs = append([]string(nil), j.WorkerIDs...)
	}
	if j.Images != nil {
		c.Images = append([]string(nil), j.Images...)
	}
	return c
}

// SortTime returns the timestamp used for recency ordering: CreatedAt when
// set, otherwise the job date.
func (j Job) SortTime() time.Time {
	if !j.CreatedAt.IsZero() {
		return j.CreatedAt
	}
	if t, err := time.Parse("2006-01-02", j.Date); err == nil {
		return t
	}
	return time.Time{}
}
