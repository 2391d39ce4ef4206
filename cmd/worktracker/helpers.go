// Shared helpers for worktracker CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/michelsoler74/work-tracker-pro/internal/backup"
	"github.com/michelsoler74/work-tracker-pro/internal/service"
	"github.com/michelsoler74/work-tracker-pro/internal/sqlite"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// app bundles the backend and services a command needs. The caller must
// defer app.close().
type app struct {
	backend *sqlite.Backend
	jobs    *service.Jobs
	workers *service.Workers
	backups *backup.Manager
	dataDir string
}

// openApp resolves the data directory, opens the store, and wires the
// services and backup manager over it.
func openApp() (*app, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := sqlite.NewBackend(dataDir)
	if err := backend.Open(); err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	jobs := service.NewJobs(backend)
	workers := service.NewWorkers(backend)
	backups := backup.NewManager(jobs, workers, appSettings(), filepath.Join(dataDir, "backups"), backupConfig())

	return &app{backend: backend, jobs: jobs, workers: workers, backups: backups, dataDir: dataDir}, nil
}

func (a *app) close() {
	_ = a.backend.Close()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// newTabWriter returns a tabwriter for aligned table output.
func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// shortID trims a UUID to its first segment for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printValidation writes each field message on its own line and exits with
// the user-error code.
func printValidation(err error) {
	var ve *types.ValidationError
	if !errors.As(err, &ve) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
	fmt.Fprintln(os.Stderr, "validation failed:")
	for _, msg := range ve.Messages {
		fmt.Fprintln(os.Stderr, "  -", msg)
	}
	os.Exit(exitUserError)
}
