// Search command for the worktracker CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/internal/search"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var (
	searchStatus  string
	searchWorkers bool
	searchMark    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search jobs (or workers) by fuzzy term",
	Long: `Search matches the term against job titles, descriptions, and assigned
worker names, ignoring case and accents. Title matches rank first. With
--workers it searches worker names, specialties, and contact details instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}
		if searchStatus != "" && !types.ValidStatus(searchStatus) {
			return fmt.Errorf("status %q: %w", searchStatus, types.ErrInvalidStatus)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		svc := search.NewService()

		if searchWorkers {
			workers, err := a.workers.All()
			if err != nil {
				return err
			}
			matched := svc.Workers(workers, term, a.workers.Version())

			if flagJSON {
				return printJSON(matched)
			}
			w := newTabWriter()
			fmt.Fprintln(w, "ID\tNAME\tSPECIALTY")
			for _, wk := range matched {
				name, specialty := wk.Name, wk.Specialty
				if searchMark {
					name = search.Highlight(name, term)
					specialty = search.Highlight(specialty, term)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(wk.ID), name, specialty)
			}
			return w.Flush()
		}

		jobs, err := a.jobs.All()
		if err != nil {
			return err
		}
		workers, err := a.workers.All()
		if err != nil {
			return err
		}

		matched := svc.Jobs(jobs, workers, term, searchStatus, a.jobs.Version())
		stats := search.Stats{Total: len(jobs), Filtered: len(matched), Term: term}

		if flagJSON {
			return printJSON(struct {
				Stats search.Stats `json:"stats"`
				Jobs  any          `json:"jobs"`
			}{stats, matched})
		}

		w := newTabWriter()
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDATE")
		for _, j := range matched {
			title := j.Title
			if searchMark {
				title = search.Highlight(title, term)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(j.ID), title, j.Status, j.Date)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d of %d matched\n", stats.Filtered, stats.Total)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "also filter jobs by status")
	searchCmd.Flags().BoolVar(&searchWorkers, "workers", false, "search workers instead of jobs")
	searchCmd.Flags().BoolVar(&searchMark, "mark", false, "highlight matches with <mark> tags")
}
