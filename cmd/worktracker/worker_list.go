// Worker list command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var workerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		workers, err := a.workers.All()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(workers)
		}

		w := newTabWriter()
		fmt.Fprintln(w, "ID\tNAME\tSPECIALTY\tHOURS")
		for _, wk := range workers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\n", shortID(wk.ID), wk.Name, wk.Specialty, wk.Hours)
		}
		return w.Flush()
	},
}
