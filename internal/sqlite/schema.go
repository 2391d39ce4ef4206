package sqlite

// Schema DDL. Every collection is one table with the same shape: records
// are stored as JSON text keyed by id. Creation is idempotent so Open can
// run the full schema on every start.
const (
	createJobs = `CREATE TABLE IF NOT EXISTS jobs (
    id TEXT PRIMARY KEY,
    record TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createWorkers = `CREATE TABLE IF NOT EXISTS workers (
    id TEXT PRIMARY KEY,
    record TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSyncQueue = `CREATE TABLE IF NOT EXISTS sync_queue (
    id TEXT PRIMARY KEY,
    record TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

const (
	idxJobsUpdated    = `CREATE INDEX IF NOT EXISTS idx_jobs_updated ON jobs(updated_at);`
	idxWorkersUpdated = `CREATE INDEX IF NOT EXISTS idx_workers_updated ON workers(updated_at);`
)

// schemaDDL lists all statements executed on open.
var schemaDDL = []string{
	createJobs,
	createWorkers,
	createSyncQueue,
	idxJobsUpdated,
	idxWorkersUpdated,
}
