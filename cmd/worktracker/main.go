// Package main provides the worktracker CLI, a local-first tracker for
// jobs, the workers assigned to them, and full-data backups.
package main

import (
	"fmt"
	"os"

	log "github.com/go-pkgz/lgr"
)

func main() {
	setupLog(false)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}

// setupLog configures lgr globally. Debug mode adds caller info.
func setupLog(dbg bool) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.CallerFunc, log.Msec, log.LevelBraces)
		return
	}
	log.Setup(log.Msec, log.LevelBraces)
}
