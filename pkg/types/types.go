// Package types defines the entity types, store contracts, and standard
// errors for the Work Tracker storage core.
package types

// Standard collection ("store") names. Each collection holds records of one
// entity type keyed by id.
const (
	CollectionJobs    = "jobs"
	CollectionWorkers = "workers"
	// CollectionSyncQueue is created alongside the others but carries no
	// traffic yet; it is reserved for a future remote-sync queue.
	CollectionSyncQueue = "sync-queue"
)

// Collections lists every collection the store adapter must create on open.
var Collections = []string{CollectionJobs, CollectionWorkers, CollectionSyncQueue}
