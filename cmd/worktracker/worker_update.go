// Worker update command for the worktracker CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michelsoler74/work-tracker-pro/internal/service"
	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

var (
	workerUpdateName      string
	workerUpdateSpecialty string
	workerUpdatePhone     string
	workerUpdateEmail     string
	workerUpdatePhoto     string
)

var workerUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing worker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		patch := types.Worker{
			Name:      workerUpdateName,
			Specialty: workerUpdateSpecialty,
			Phone:     workerUpdatePhone,
			Email:     workerUpdateEmail,
		}
		switch {
		case workerUpdatePhoto == "":
		case service.IsDataURI(workerUpdatePhoto):
			patch.ProfileImage = workerUpdatePhoto
		default:
			data, err := os.ReadFile(workerUpdatePhoto)
			if err != nil {
				return fmt.Errorf("reading photo %s: %w", workerUpdatePhoto, err)
			}
			uri, err := service.EncodeImage(data)
			if err != nil {
				return fmt.Errorf("photo %s: %w", workerUpdatePhoto, err)
			}
			patch.ProfileImage = uri
		}

		updated, err := a.workers.Update(args[0], patch)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrDuplicate) {
				fmt.Fprintln(os.Stderr, "worker update:", err)
				os.Exit(exitUserError)
			}
			printValidation(err)
			return err
		}

		if flagJSON {
			return printJSON(updated)
		}
		fmt.Printf("Updated worker: %s\n", updated.ID)
		return nil
	},
}

func init() {
	workerUpdateCmd.Flags().StringVar(&workerUpdateName, "name", "", "new name")
	workerUpdateCmd.Flags().StringVar(&workerUpdateSpecialty, "specialty", "", "new specialty")
	workerUpdateCmd.Flags().StringVar(&workerUpdatePhone, "phone", "", "new phone number")
	workerUpdateCmd.Flags().StringVar(&workerUpdateEmail, "email", "", "new email address")
	workerUpdateCmd.Flags().StringVar(&workerUpdatePhoto, "photo", "", "new profile image file")
}
