// Package worktracker carries build-level metadata shared by the CLI and
// integration tests.
package worktracker

// Version is the current release version.
const Version = "0.1.0"
