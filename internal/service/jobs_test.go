package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelsoler74/work-tracker-pro/internal/sqlite"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

func newTestStore(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend(t.TempDir())
	require.NoError(t, b.Open())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func validJob() types.Job {
	return types.Job{
		Title:       "Reparar fregadero",
		Description: "Cambiar el sifón y revisar fugas",
		Date:        "2024-06-01",
	}
}

func TestJobsAdd(t *testing.T) {
	s := NewJobs(newTestStore(t))

	added, err := s.Add(validJob())
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID, "id generated when absent")
	assert.Equal(t, types.StatusPending, added.Status, "status defaults to pending")
	assert.False(t, added.CreatedAt.IsZero())
	assert.Equal(t, added.CreatedAt, added.UpdatedAt)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, added.ID, all[0].ID)
}

func TestJobsAddPreservesProvidedID(t *testing.T) {
	s := NewJobs(newTestStore(t))

	j := validJob()
	j.ID = "fixed-id"
	added, err := s.Add(j)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", added.ID)
}

func TestJobsAddValidation(t *testing.T) {
	s := NewJobs(newTestStore(t))

	_, err := s.Add(types.Job{Title: "ab", Description: "short", Date: "bad"})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))

	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "title")
	assert.Contains(t, ve.Errors, "description")
	assert.Contains(t, ve.Errors, "date")

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all, "invalid record never persisted")
}

func TestJobsAddDuplicate(t *testing.T) {
	s := NewJobs(newTestStore(t))

	_, err := s.Add(validJob())
	require.NoError(t, err)

	// Same title, different case.
	dup := validJob()
	dup.Title = "REPARAR FREGADERO"
	_, err = s.Add(dup)
	assert.ErrorIs(t, err, types.ErrDuplicate)

	// Title collides even when the date differs.
	other := validJob()
	other.Title = "Reparar Fregadero"
	other.Date = "2024-07-01"
	_, err = s.Add(other)
	assert.ErrorIs(t, err, types.ErrDuplicate)
}

func TestJobsUpdateDuplicateTitle(t *testing.T) {
	s := NewJobs(newTestStore(t))

	_, err := s.Add(validJob())
	require.NoError(t, err)

	b := validJob()
	b.Title = "Pintar fachada"
	added, err := s.Add(b)
	require.NoError(t, err)

	// Renaming onto another job's title is rejected.
	_, err = s.Update(added.ID, types.Job{Title: "reparar fregadero"})
	assert.ErrorIs(t, err, types.ErrDuplicate)

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pintar fachada", got.Title, "failed update leaves record untouched")

	// Updating a job without renaming it does not collide with itself.
	_, err = s.Update(added.ID, types.Job{Status: types.StatusCompleted})
	assert.NoError(t, err)
}

func TestJobsGet(t *testing.T) {
	s := NewJobs(newTestStore(t))

	added, err := s.Add(validJob())
	require.NoError(t, err)

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.Title, got.Title)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestJobsUpdateMerges(t *testing.T) {
	s := NewJobs(newTestStore(t))

	j := validJob()
	j.Images = []string{"data:image/png;base64,AAAA"}
	added, err := s.Add(j)
	require.NoError(t, err)

	updated, err := s.Update(added.ID, types.Job{
		Status: types.StatusInProgress,
		Images: []string{"data:image/png;base64,BBBB"},
	})
	require.NoError(t, err)

	assert.Equal(t, added.Title, updated.Title, "empty patch field keeps stored value")
	assert.Equal(t, types.StatusInProgress, updated.Status)
	assert.Equal(t, []string{"data:image/png;base64,AAAA", "data:image/png;base64,BBBB"}, updated.Images,
		"patch images appended, not replaced")
	assert.Equal(t, added.CreatedAt, updated.CreatedAt)
}

func TestJobsUpdateUnknown(t *testing.T) {
	s := NewJobs(newTestStore(t))
	_, err := s.Update("missing", types.Job{Title: "whatever else"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestJobsUpdateValidatesMerged(t *testing.T) {
	s := NewJobs(newTestStore(t))

	added, err := s.Add(validJob())
	require.NoError(t, err)

	_, err = s.Update(added.ID, types.Job{Status: "Cancelado"})
	assert.True(t, types.IsValidation(err))

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, got.Status, "failed update leaves record untouched")
}

func TestJobsDeleteIdempotent(t *testing.T) {
	s := NewJobs(newTestStore(t))

	added, err := s.Add(validJob())
	require.NoError(t, err)

	require.NoError(t, s.Delete(added.ID))
	_, err = s.Get(added.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.NoError(t, s.Delete(added.ID), "second delete is a no-op")
}

func TestJobsStatusTransitions(t *testing.T) {
	s := NewJobs(newTestStore(t))

	added, err := s.Add(validJob())
	require.NoError(t, err)

	started, err := s.Start(added.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusInProgress, started.Status)

	completed, err := s.Complete(added.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, completed.Status)
}

func TestJobsByStatus(t *testing.T) {
	s := NewJobs(newTestStore(t))

	a, err := s.Add(validJob())
	require.NoError(t, err)

	other := validJob()
	other.Title = "Pintar fachada principal"
	b, err := s.Add(other)
	require.NoError(t, err)

	_, err = s.Complete(b.ID)
	require.NoError(t, err)

	pending, err := s.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	completed, err := s.Completed()
	require.NoError(t, err)
	require.Len(t, completed, 1)

	inProgress, err := s.InProgress()
	require.NoError(t, err)
	assert.Empty(t, inProgress)

	_, err = s.ByStatus("Cancelado")
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
}

func TestJobsForWorker(t *testing.T) {
	s := NewJobs(newTestStore(t))

	j := validJob()
	j.WorkerIDs = []string{"w1", "w2"}
	added, err := s.Add(j)
	require.NoError(t, err)

	other := validJob()
	other.Title = "Pintar fachada principal"
	_, err = s.Add(other)
	require.NoError(t, err)

	jobs, err := s.ForWorker("w1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, added.ID, jobs[0].ID)

	jobs, err = s.ForWorker("unknown")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobsStats(t *testing.T) {
	s := NewJobs(newTestStore(t))

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, JobStats{}, stats, "empty collection yields zero stats")

	titles := []string{"Reparar fregadero roto", "Pintar fachada principal", "Instalar cuadro nuevo", "Cambiar cerradura puerta"}
	var ids []string
	for _, title := range titles {
		j := validJob()
		j.Title = title
		added, err := s.Add(j)
		require.NoError(t, err)
		ids = append(ids, added.ID)
	}
	_, err = s.Complete(ids[0])
	require.NoError(t, err)
	_, err = s.Start(ids[1])
	require.NoError(t, err)

	stats, err = s.Stats()
	require.NoError(t, err)
	assert.Equal(t, JobStats{Total: 4, Pending: 2, InProgress: 1, Completed: 1, CompletionRate: 25}, stats)
}

func TestJobsReplace(t *testing.T) {
	s := NewJobs(newTestStore(t))

	j := validJob()
	j.ID = "j1"
	j.Images = []string{"old"}
	_, err := s.Add(j)
	require.NoError(t, err)

	replacement := validJob()
	replacement.ID = "j1"
	replacement.Title = "Título restaurado"
	require.NoError(t, s.Replace(replacement))

	got, err := s.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, "Título restaurado", got.Title)
	assert.Empty(t, got.Images, "replace is wholesale, nothing merged")

	// Replacing an absent id inserts it.
	fresh := validJob()
	fresh.ID = "j2"
	fresh.Title = "Trabajo importado"
	require.NoError(t, s.Replace(fresh))
	_, err = s.Get("j2")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Replace(types.Job{}), types.ErrInvalidID)
}

func TestJobsVersionBumpsOnMutation(t *testing.T) {
	s := NewJobs(newTestStore(t))
	require.NoError(t, s.Init())

	v0 := s.Version()
	added, err := s.Add(validJob())
	require.NoError(t, err)
	assert.Greater(t, s.Version(), v0)

	v1 := s.Version()
	_, err = s.Complete(added.ID)
	require.NoError(t, err)
	assert.Greater(t, s.Version(), v1)
}

func TestJobsPersistAcrossReload(t *testing.T) {
	store := newTestStore(t)

	s := NewJobs(store)
	added, err := s.Add(validJob())
	require.NoError(t, err)

	// A fresh service over the same store sees the record.
	s2 := NewJobs(store)
	got, err := s2.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.Title, got.Title)
}

func TestJobsExport(t *testing.T) {
	s := NewJobs(newTestStore(t))
	_, err := s.Add(validJob())
	require.NoError(t, err)

	name, data, err := s.Export()
	require.NoError(t, err)
	assert.Regexp(t, `^jobs_\d{4}-\d{2}-\d{2}\.json$`, name)
	assert.Contains(t, string(data), "Reparar fregadero")
}

func TestResolveWorkers(t *testing.T) {
	workers := []types.Worker{
		{ID: "w1", Name: "María García"},
		{ID: "w2", Name: "Juan Pérez"},
	}
	j := types.Job{WorkerIDs: []string{"w2", "gone", "w1"}}

	resolved := ResolveWorkers(j, workers)
	require.Len(t, resolved, 2, "dangling reference filtered out")
	assert.Equal(t, "w2", resolved[0].ID, "assignment order preserved")
	assert.Equal(t, "w1", resolved[1].ID)
}
