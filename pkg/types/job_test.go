package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{name: "pending", status: StatusPending, want: true},
		{name: "in progress", status: StatusInProgress, want: true},
		{name: "completed", status: StatusCompleted, want: true},
		{name: "english value rejected", status: "Pending", want: false},
		{name: "empty rejected", status: "", want: false},
		{name: "unknown rejected", status: "Cancelado", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStatus(tt.status))
		})
	}
}

func TestJobClone(t *testing.T) {
	j := Job{
		ID:        "j1",
		Title:     "Fix sink",
		WorkerIDs: []string{"w1", "w2"},
		Images:    []string{"data:image/png;base64,AAAA"},
	}

	c := j.Clone()
	c.WorkerIDs[0] = "changed"
	c.Images = append(c.Images, "extra")

	assert.Equal(t, "w1", j.WorkerIDs[0], "clone must not share worker ids")
	assert.Len(t, j.Images, 1, "clone must not share images")
}

func TestJobCloneNilSlices(t *testing.T) {
	c := Job{ID: "j1"}.Clone()
	assert.Nil(t, c.WorkerIDs)
	assert.Nil(t, c.Images)
}

func TestJobSortTime(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		job  Job
		want time.Time
	}{
		{
			name: "createdAt wins",
			job:  Job{CreatedAt: created, Date: "2024-01-01"},
			want: created,
		},
		{
			name: "falls back to date",
			job:  Job{Date: "2024-01-01"},
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "zero when neither parses",
			job:  Job{Date: "not-a-date"},
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.SortTime())
		})
	}
}
