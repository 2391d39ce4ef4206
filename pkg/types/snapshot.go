package types

// SnapshotVersion is the current backup format version stamped on every
// snapshot this build produces.
const SnapshotVersion = "1.0.0"

// Snapshot is a complete point-in-time serialized copy of both collections
// plus application settings. Timestamp is kept as a string so structural
// validation can report an unparseable value instead of failing to decode.
type Snapshot struct {
	Version   string           `json:"version"`
	Timestamp string           `json:"timestamp"` // RFC 3339
	Metadata  SnapshotMetadata `json:"metadata"`
	Data      SnapshotData     `json:"data"`
}

// SnapshotMetadata describes the snapshot's provenance.
type SnapshotMetadata struct {
	AppName      string `json:"appName"`
	ExportedBy   string `json:"exportedBy"`
	TotalJobs    int    `json:"totalJobs"`
	TotalWorkers int    `json:"totalWorkers"`
}

// SnapshotData carries the backed-up collections. Jobs and Workers must be
// non-nil (empty allowed) for the snapshot to be structurally valid.
type SnapshotData struct {
	Jobs     []Job             `json:"jobs"`
	Workers  []Worker          `json:"workers"`
	Settings map[string]string `json:"settings"`
}
