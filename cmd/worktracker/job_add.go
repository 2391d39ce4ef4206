// Job add command for the worktracker CLI.
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
	jobAddTitle       string
	jobAddDescription string
	jobAddDate        string
	jobAddStatus      string
	jobAddWorkers     string
	jobAddImages      []string
)

var jobAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		j := types.Job{
			Title:       jobAddTitle,
			Description: jobAddDescription,
			Date:        jobAddDate,
			Status:      jobAddStatus,
		}
		if jobAddWorkers != "" {
			for _, id := range strings.Split(jobAddWorkers, ",") {
				j.WorkerIDs = append(j.WorkerIDs, strings.TrimSpace(id))
			}
		}

		for _, path := range jobAddImages {
			if service.IsDataURI(path) {
				j.Images = append(j.Images, path)
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
			j.Images = append(j.Images, uri)
		}

		added, err := a.jobs.Add(j)
		if err != nil {
			if errors.Is(err, types.ErrDuplicate) {
				fmt.Fprintln(os.Stderr, "job add:", err)
				os.Exit(exitUserError)
			}
			printValidation(err)
			return err
		}

		if flagJSON {
			return printJSON(added)
		}
		fmt.Printf("Created job: %s\n", added.ID)
		return nil
	},
}

func init() {
	jobAddCmd.Flags().StringVar(&jobAddTitle, "title", "", "job title (required)")
	jobAddCmd.Flags().StringVar(&jobAddDescription, "description", "", "job description (required)")
	jobAddCmd.Flags().StringVar(&jobAddDate, "date", "", "scheduled date, YYYY-MM-DD (required)")
	jobAddCmd.Flags().StringVar(&jobAddStatus, "status", "", "initial status (default: Pendiente)")
	jobAddCmd.Flags().StringVar(&jobAddWorkers, "workers", "", "comma-separated worker ids")
	jobAddCmd.Flags().StringArrayVar(&jobAddImages, "image", nil, "image file to attach (repeatable)")

	jobAddCmd.MarkFlagRequired("title")
	jobAddCmd.MarkFlagRequired("description")
	jobAddCmd.MarkFlagRequired("date")
}
