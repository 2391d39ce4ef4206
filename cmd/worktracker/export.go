// Export command writes jobs or workers to a JSON file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <jobs|workers>",
	Short: "Export a collection to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		var name string
		var data []byte
		switch args[0] {
		case "jobs":
			name, data, err = a.jobs.Export()
		case "workers":
			name, data, err = a.workers.Export()
		default:
			fmt.Fprintf(os.Stderr, "export: unknown collection %q (valid: jobs, workers)\n", args[0])
			os.Exit(exitUserError)
		}
		if err != nil {
			return err
		}

		path := filepath.Join(exportOut, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")
}
