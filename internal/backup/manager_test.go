package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michelsoler74/work-tracker-pro/internal/service"
	"github.com/michelsoler74/work-tracker-pro/internal/sqlite"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

type fixture struct {
	jobs    *service.Jobs
	workers *service.Workers
	manager *Manager
	dir     string
}

func newFixture(t *testing.T, cfg types.Config) fixture {
	t.Helper()

	store := sqlite.NewBackend(t.TempDir())
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })

	jobs := service.NewJobs(store)
	workers := service.NewWorkers(store)
	dir := t.TempDir()
	settings := map[string]string{"language": "es", "theme": "light"}

	return fixture{
		jobs:    jobs,
		workers: workers,
		manager: NewManager(jobs, workers, settings, dir, cfg),
		dir:     dir,
	}
}

func (f fixture) seed(t *testing.T) (types.Worker, types.Job) {
	t.Helper()

	w, err := f.workers.Add(types.Worker{Name: "María García", Specialty: "Electricista"})
	require.NoError(t, err)

	j, err := f.jobs.Add(types.Job{
		Title:       "Reparar fregadero",
		Description: "Cambiar el sifón y revisar fugas",
		Date:        "2024-06-01",
		WorkerIDs:   []string{w.ID},
	})
	require.NoError(t, err)
	return w, j
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	snap, err := f.manager.Snapshot(false)
	require.NoError(t, err)

	assert.Equal(t, types.SnapshotVersion, snap.Version)
	assert.NotEmpty(t, snap.Timestamp)
	assert.Equal(t, 1, snap.Metadata.TotalJobs)
	assert.Equal(t, 1, snap.Metadata.TotalWorkers)
	assert.Len(t, snap.Data.Jobs, 1)
	assert.Len(t, snap.Data.Workers, 1)
	assert.Equal(t, "es", snap.Data.Settings["language"])
}

func TestSnapshotStripImages(t *testing.T) {
	f := newFixture(t, types.Config{})
	w, j := f.seed(t)

	uri := "data:image/png;base64,iVBORw0KGgo="
	_, err := f.jobs.Update(j.ID, types.Job{Images: []string{uri}})
	require.NoError(t, err)
	_, err = f.workers.Update(w.ID, types.Worker{ProfileImage: uri})
	require.NoError(t, err)

	snap, err := f.manager.Snapshot(true)
	require.NoError(t, err)
	assert.Empty(t, snap.Data.Jobs[0].Images)
	assert.Empty(t, snap.Data.Workers[0].ProfileImage)

	// The live records keep their images.
	kept, err := f.jobs.Get(j.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{uri}, kept.Images)
}

func TestExportWritesFile(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	out := t.TempDir()
	path, err := f.manager.Export(out, false)
	require.NoError(t, err)
	assert.Regexp(t, `work-tracker-backup-\d{4}-\d{2}-\d{2}\.json$`, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap types.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Data.Jobs, 1)
}

func TestValidate(t *testing.T) {
	valid := types.Snapshot{
		Version:   types.SnapshotVersion,
		Timestamp: "2024-06-01T10:00:00Z",
		Data: types.SnapshotData{
			Jobs:    []types.Job{{ID: "j1", Title: "Algo", WorkerIDs: []string{"w1"}}},
			Workers: []types.Worker{{ID: "w1", Name: "María"}},
		},
	}

	tests := []struct {
		name         string
		mutate       func(*types.Snapshot)
		wantOK       bool
		wantWarnings int
	}{
		{name: "valid", mutate: func(s *types.Snapshot) {}, wantOK: true},
		{name: "missing version", mutate: func(s *types.Snapshot) { s.Version = "" }, wantOK: false},
		{name: "version mismatch warns", mutate: func(s *types.Snapshot) { s.Version = "0.9.0" }, wantOK: true, wantWarnings: 1},
		{name: "missing timestamp warns", mutate: func(s *types.Snapshot) { s.Timestamp = "" }, wantOK: true, wantWarnings: 1},
		{name: "bad timestamp warns", mutate: func(s *types.Snapshot) { s.Timestamp = "yesterday" }, wantOK: true, wantWarnings: 1},
		{name: "nil jobs", mutate: func(s *types.Snapshot) { s.Data.Jobs = nil }, wantOK: false},
		{name: "nil workers", mutate: func(s *types.Snapshot) { s.Data.Workers = nil }, wantOK: false, wantWarnings: 1},
		{name: "job missing id", mutate: func(s *types.Snapshot) { s.Data.Jobs[0].ID = "" }, wantOK: false},
		{name: "job missing title", mutate: func(s *types.Snapshot) { s.Data.Jobs[0].Title = "" }, wantOK: false},
		{name: "worker missing name", mutate: func(s *types.Snapshot) { s.Data.Workers[0].Name = "" }, wantOK: false},
		{name: "dangling worker ref warns", mutate: func(s *types.Snapshot) { s.Data.Jobs[0].WorkerIDs = []string{"gone"} }, wantOK: true, wantWarnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := valid
			snap.Data.Jobs = append([]types.Job(nil), valid.Data.Jobs...)
			snap.Data.Workers = append([]types.Worker(nil), valid.Data.Workers...)
			tt.mutate(&snap)

			r := Validate(snap)
			assert.Equal(t, tt.wantOK, r.OK(), "errors: %v", r.Errors)
			assert.Len(t, r.Warnings, tt.wantWarnings, "warnings: %v", r.Warnings)
		})
	}
}

func TestRestoreInvalidAborts(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	_, err := f.manager.Restore(types.Snapshot{}, StrategySkip)
	assert.ErrorIs(t, err, types.ErrBackupInvalid)

	jobs, err := f.jobs.All()
	require.NoError(t, err)
	assert.Len(t, jobs, 1, "no mutation on invalid snapshot")

	history, err := f.manager.History()
	require.NoError(t, err)
	assert.Empty(t, history, "no safety backup for an aborted restore")
}

func TestRestoreUnknownStrategy(t *testing.T) {
	f := newFixture(t, types.Config{})
	_, err := f.manager.Restore(types.Snapshot{}, Strategy("merge"))
	assert.Error(t, err)
}

func TestRestoreSkipKeepsExisting(t *testing.T) {
	f := newFixture(t, types.Config{})
	w, j := f.seed(t)

	snap, err := f.manager.Snapshot(false)
	require.NoError(t, err)

	// Mutate the live data after the snapshot.
	_, err = f.workers.Update(w.ID, types.Worker{Specialty: "Fontanera"})
	require.NoError(t, err)

	sum, err := f.manager.Restore(snap, StrategySkip)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.JobsRestored+sum.WorkersRestored)
	assert.Equal(t, 2, sum.Skipped)

	got, err := f.workers.Get(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fontanera", got.Specialty, "skip keeps the live record")

	_, err = f.jobs.Get(j.ID)
	assert.NoError(t, err)
}

func TestRestoreOverwriteReplaces(t *testing.T) {
	f := newFixture(t, types.Config{})
	w, _ := f.seed(t)

	snap, err := f.manager.Snapshot(false)
	require.NoError(t, err)

	_, err = f.workers.Update(w.ID, types.Worker{Specialty: "Fontanera"})
	require.NoError(t, err)

	sum, err := f.manager.Restore(snap, StrategyOverwrite)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.WorkersRestored)
	assert.Equal(t, 1, sum.JobsRestored)
	assert.Zero(t, sum.Failed)

	got, err := f.workers.Get(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electricista", got.Specialty, "overwrite restores the snapshot value")
}

func TestRestoreAddDuplicatesUnderNewIDs(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	snap, err := f.manager.Snapshot(false)
	require.NoError(t, err)

	sum, err := f.manager.Restore(snap, StrategyAdd)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.WorkersRestored)
	assert.Equal(t, 1, sum.JobsRestored)

	workers, err := f.workers.All()
	require.NoError(t, err)
	assert.Len(t, workers, 2, "add duplicates instead of merging")
	assert.NotEqual(t, workers[0].ID, workers[1].ID)
}

func TestRestoreAddKeepsIDsWithoutCollision(t *testing.T) {
	f := newFixture(t, types.Config{})
	w, j := f.seed(t)

	snap, err := f.manager.Snapshot(false)
	require.NoError(t, err)

	require.NoError(t, f.jobs.Delete(j.ID))
	require.NoError(t, f.workers.Delete(w.ID))

	sum, err := f.manager.Restore(snap, StrategyAdd)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.WorkersRestored)
	assert.Equal(t, 1, sum.JobsRestored)

	// Nothing collided, so the snapshot ids survive and the job's worker
	// reference still resolves.
	restored, err := f.jobs.Get(j.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{w.ID}, restored.WorkerIDs)

	_, err = f.workers.Get(w.ID)
	require.NoError(t, err)

	workers, err := f.workers.All()
	require.NoError(t, err)
	assert.Equal(t, []types.Worker{workers[0]}, service.ResolveWorkers(restored, workers))
}

func TestRestoreSavesSafetyBackup(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	snap, err := f.manager.Snapshot(false)
	require.NoError(t, err)

	_, err = f.manager.Restore(snap, StrategyOverwrite)
	require.NoError(t, err)

	history, err := f.manager.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "before-restore", history[0].Reason)
}

func TestRestoreRoundTripAfterWipe(t *testing.T) {
	f := newFixture(t, types.Config{})
	w, j := f.seed(t)

	snap, err := f.manager.Snapshot(false)
	require.NoError(t, err)

	require.NoError(t, f.jobs.Delete(j.ID))
	require.NoError(t, f.workers.Delete(w.ID))

	sum, err := f.manager.Restore(snap, StrategySkip)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.WorkersRestored)
	assert.Equal(t, 1, sum.JobsRestored)

	restored, err := f.jobs.Get(j.ID)
	require.NoError(t, err)
	assert.Equal(t, j.Title, restored.Title)
	assert.Equal(t, []string{w.ID}, restored.WorkerIDs)
}

func TestImportFile(t *testing.T) {
	f := newFixture(t, types.Config{})
	w, j := f.seed(t)

	out := t.TempDir()
	path, err := f.manager.Export(out, false)
	require.NoError(t, err)

	require.NoError(t, f.jobs.Delete(j.ID))
	require.NoError(t, f.workers.Delete(w.ID))

	sum, err := f.manager.ImportFile(path, StrategySkip)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.JobsRestored)
	assert.Equal(t, 1, sum.WorkersRestored)
}

func TestImportFileGarbage(t *testing.T) {
	f := newFixture(t, types.Config{})

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := f.manager.ImportFile(path, StrategySkip)
	assert.ErrorIs(t, err, types.ErrBackupInvalid)
}

func TestValidateFile(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	path, err := f.manager.Export(t.TempDir(), false)
	require.NoError(t, err)

	report, err := f.manager.ValidateFile(path)
	require.NoError(t, err)
	assert.True(t, report.OK())

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	report, err = f.manager.ValidateFile(bad)
	require.NoError(t, err)
	assert.False(t, report.OK())
}

func TestSaveAutoEvictsOldest(t *testing.T) {
	f := newFixture(t, types.Config{MaxAutoBackups: 2})
	f.seed(t)

	var entries []Entry
	for i := 0; i < 3; i++ {
		e, err := f.manager.SaveAuto(fmt.Sprintf("manual-%d", i))
		require.NoError(t, err)
		entries = append(entries, e)
	}

	history, err := f.manager.History()
	require.NoError(t, err)
	require.Len(t, history, 2, "history capped")
	assert.Equal(t, entries[2].ID, history[0].ID, "newest first")
	assert.Equal(t, entries[1].ID, history[1].ID)

	// Evicted file is gone, survivors remain.
	_, err = os.Stat(filepath.Join(f.dir, entries[0].File))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(f.dir, entries[2].File))
	assert.NoError(t, err)
}

func TestHistoryPersistsAcrossManagers(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	e, err := f.manager.SaveAuto("manual")
	require.NoError(t, err)

	// A fresh manager over the same directory sees the entry.
	m2 := NewManager(f.jobs, f.workers, nil, f.dir, types.Config{})
	history, err := m2.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, e.ID, history[0].ID)
}

func TestRestoreAuto(t *testing.T) {
	f := newFixture(t, types.Config{})
	w, j := f.seed(t)

	e, err := f.manager.SaveAuto("manual")
	require.NoError(t, err)

	require.NoError(t, f.jobs.Delete(j.ID))
	require.NoError(t, f.workers.Delete(w.ID))

	sum, err := f.manager.RestoreAuto(e.ID, StrategySkip)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.JobsRestored)

	_, err = f.manager.RestoreAuto("missing", StrategySkip)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteAuto(t *testing.T) {
	f := newFixture(t, types.Config{})
	f.seed(t)

	e, err := f.manager.SaveAuto("manual")
	require.NoError(t, err)

	require.NoError(t, f.manager.DeleteAuto(e.ID))
	_, err = os.Stat(filepath.Join(f.dir, e.File))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, f.manager.DeleteAuto(e.ID), types.ErrNotFound)
}

func TestHistoryStats(t *testing.T) {
	f := newFixture(t, types.Config{MaxAutoBackups: 3})
	f.seed(t)

	stats, err := f.manager.HistoryStats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Count: 0, Cap: 3}, stats)

	_, err = f.manager.SaveAuto("manual")
	require.NoError(t, err)

	stats, err = f.manager.HistoryStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.NotNil(t, stats.Newest)
	assert.Positive(t, stats.DirBytes)
}
