// Backup list command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups in the history, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		entries, err := a.backups.History()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(entries)
		}

		w := newTabWriter()
		fmt.Fprintln(w, "ID\tREASON\tCREATED\tJOBS\tWORKERS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
				e.ID, e.Reason, e.CreatedAt.Format("2006-01-02 15:04"), e.Jobs, e.Workers)
		}
		return w.Flush()
	},
}
