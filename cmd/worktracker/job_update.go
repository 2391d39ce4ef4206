// Job update command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/internal/service"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var (
	jobUpdateTitle       string
	jobUpdateDescription string
	jobUpdateDate        string
	jobUpdateStatus      string
	jobUpdateWorkers     string
	jobUpdateImages      []string
)

var jobUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing job",
	Long: `Update changes only the fields given by flags; others keep their stored
values. --workers replaces the assignment list; --image appends.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		patch := types.Job{
			Title:       jobUpdateTitle,
			Description: jobUpdateDescription,
			Date:        jobUpdateDate,
			Status:      jobUpdateStatus,
		}
		if cmd.Flags().Changed("workers") {
			patch.WorkerIDs = []string{}
			if jobUpdateWorkers != "" {
				for _, id := range strings.Split(jobUpdateWorkers, ",") {
					patch.WorkerIDs = append(patch.WorkerIDs, strings.TrimSpace(id))
				}
			}
		}

		for _, path := range jobUpdateImages {
			if service.IsDataURI(path) {
				patch.Images = append(patch.Images, path)
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading image %s: %w", path, err)
			}
			uri, err := service.EncodeImage(data)
			if err != nil {
				return fmt.Errorf("image %s: %w", path, err)
			}
			patch.Images = append(patch.Images, uri)
		}

		updated, err := a.jobs.Update(args[0], patch)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "job update:", err)
				os.Exit(exitUserError)
			}
			printValidation(err)
			return err
		}

		if flagJSON {
			return printJSON(updated)
		}
		fmt.Printf("Updated job: %s\n", updated.ID)
		return nil
	},
}

func init() {
	jobUpdateCmd.Flags().StringVar(&jobUpdateTitle, "title", "", "new title")
	jobUpdateCmd.Flags().StringVar(&jobUpdateDescription, "description", "", "new description")
	jobUpdateCmd.Flags().StringVar(&jobUpdateDate, "date", "", "new date, YYYY-MM-DD")
	jobUpdateCmd.Flags().StringVar(&jobUpdateStatus, "status", "", "new status")
	jobUpdateCmd.Flags().StringVar(&jobUpdateWorkers, "workers", "", "comma-separated worker ids (replaces assignment)")
	jobUpdateCmd.Flags().StringArrayVar(&jobUpdateImages, "image", nil, "image file to attach (repeatable)")
}
