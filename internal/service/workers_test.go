package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

func validWorker() types.Worker {
	return types.Worker{
		Name:      "María García",
		Specialty: "Electricista",
		Phone:     "+34 600 123 456",
		Email:     "maria@example.com",
	}
}

func TestWorkersAdd(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	added, err := s.Add(validWorker())
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Zero(t, added.Hours)
	assert.False(t, added.CreatedAt.IsZero())

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestWorkersAddValidation(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	_, err := s.Add(types.Worker{Name: "R2D2", Specialty: "ab"})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))

	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "name")
	assert.Contains(t, ve.Errors, "specialty")
}

func TestWorkersAddDuplicate(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	_, err := s.Add(validWorker())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*types.Worker)
	}{
		{name: "name case-insensitive", mutate: func(w *types.Worker) {
			w.Email = "otra@example.com"
			w.Phone = "+34 699 999 999"
			w.Name = "MARÍA GARCÍA"
		}},
		{name: "email case-insensitive", mutate: func(w *types.Worker) {
			w.Name = "Lucía Romero"
			w.Phone = "+34 699 999 999"
			w.Email = "MARIA@EXAMPLE.COM"
		}},
		{name: "phone exact", mutate: func(w *types.Worker) {
			w.Name = "Lucía Romero"
			w.Email = "lucia@example.com"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWorker()
			tt.mutate(&w)
			_, err := s.Add(w)
			assert.ErrorIs(t, err, types.ErrDuplicate)
		})
	}

	// A genuinely distinct worker is accepted.
	other := types.Worker{Name: "Lucía Romero", Specialty: "Fontanera", Email: "lucia@example.com", Phone: "+34 611 111 111"}
	_, err = s.Add(other)
	assert.NoError(t, err)
}

func TestWorkersUpdateNotSelfDuplicate(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	added, err := s.Add(validWorker())
	require.NoError(t, err)

	// Updating a worker keeping its own name must not trip the duplicate check.
	updated, err := s.Update(added.ID, types.Worker{Specialty: "Fontanera"})
	require.NoError(t, err)
	assert.Equal(t, "Fontanera", updated.Specialty)
	assert.Equal(t, added.Name, updated.Name)
}

func TestWorkersUpdateCollision(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	_, err := s.Add(validWorker())
	require.NoError(t, err)

	other, err := s.Add(types.Worker{Name: "Lucía Romero", Specialty: "Fontanera"})
	require.NoError(t, err)

	_, err = s.Update(other.ID, types.Worker{Name: "maría garcía"})
	assert.ErrorIs(t, err, types.ErrDuplicate)
}

func TestWorkersDelete(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	added, err := s.Add(validWorker())
	require.NoError(t, err)

	require.NoError(t, s.Delete(added.ID))
	_, err = s.Get(added.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.NoError(t, s.Delete(added.ID))
}

func TestWorkersAddHours(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	added, err := s.Add(validWorker())
	require.NoError(t, err)

	w, err := s.AddHours(added.ID, 4.5)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, w.Hours, 1e-9)

	w, err = s.AddHours(added.ID, 3)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, w.Hours, 1e-9)

	_, err = s.AddHours(added.ID, -1)
	assert.Error(t, err)

	_, err = s.AddHours("missing", 1)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestWorkersStats(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, WorkerStats{}, stats)

	a, err := s.Add(validWorker())
	require.NoError(t, err)
	b, err := s.Add(types.Worker{Name: "Lucía Romero", Specialty: "Fontanera"})
	require.NoError(t, err)

	// No hours logged yet: no top worker.
	stats, err = s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Nil(t, stats.Top)

	_, err = s.AddHours(a.ID, 10)
	require.NoError(t, err)
	_, err = s.AddHours(b.ID, 30)
	require.NoError(t, err)

	stats, err = s.Stats()
	require.NoError(t, err)
	assert.InDelta(t, 40, stats.TotalHours, 1e-9)
	assert.InDelta(t, 20, stats.AverageHours, 1e-9)
	require.NotNil(t, stats.Top)
	assert.Equal(t, b.ID, stats.Top.ID)
	assert.InDelta(t, 30, stats.Top.Hours, 1e-9)
}

func TestWorkersReplace(t *testing.T) {
	s := NewWorkers(newTestStore(t))

	w := validWorker()
	w.ID = "w1"
	_, err := s.Add(w)
	require.NoError(t, err)

	replacement := validWorker()
	replacement.ID = "w1"
	replacement.Specialty = "Fontanera"
	require.NoError(t, s.Replace(replacement))

	got, err := s.Get("w1")
	require.NoError(t, err)
	assert.Equal(t, "Fontanera", got.Specialty)

	assert.ErrorIs(t, s.Replace(types.Worker{}), types.ErrInvalidID)
}

func TestWorkersExport(t *testing.T) {
	s := NewWorkers(newTestStore(t))
	_, err := s.Add(validWorker())
	require.NoError(t, err)

	name, data, err := s.Export()
	require.NoError(t, err)
	assert.Regexp(t, `^workers_\d{4}-\d{2}-\d{2}\.json$`, name)
	assert.Contains(t, string(data), "María García")
}
