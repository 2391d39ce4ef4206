package types

import "time"

// Worker represents a person jobs can be assigned to. Phone and Email are
// optional; ProfileImage is a data-URI encoded image or empty when unset.
type Worker struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Specialty    string    `json:"specialty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Hours        float64   `json:"hours"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Clone returns a copy of the worker. Worker has no reference fields today;
// the method exists so cached workers are handed out by value like jobs.
func (w Worker) Clone() Worker {
	return w
}
