// Worker add command for the worktracker CLI.
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
	workerAddName      string
	workerAddSpecialty string
	workerAddPhone     string
	workerAddEmail     string
	workerAddPhoto     string
)

var workerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new worker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		w := types.Worker{
			Name:      workerAddName,
			Specialty: workerAddSpecialty,
			Phone:     workerAddPhone,
			Email:     workerAddEmail,
		}
		switch {
		case workerAddPhoto == "":
		case service.IsDataURI(workerAddPhoto):
			w.ProfileImage = workerAddPhoto
		default:
			data, err := os.ReadFile(workerAddPhoto)
			if err != nil {
				return fmt.Errorf("reading photo %s: %w", workerAddPhoto, err)
			}
			uri, err := service.EncodeImage(data)
			if err != nil {
				return fmt.Errorf("photo %s: %w", workerAddPhoto, err)
			}
			w.ProfileImage = uri
		}

		added, err := a.workers.Add(w)
		if err != nil {
			if errors.Is(err, types.ErrDuplicate) {
				fmt.Fprintln(os.Stderr, "worker add:", err)
				os.Exit(exitUserError)
			}
			printValidation(err)
			return err
		}

		if flagJSON {
			return printJSON(added)
		}
		fmt.Printf("Created worker: %s\n", added.ID)
		return nil
	},
}

func init() {
	workerAddCmd.Flags().StringVar(&workerAddName, "name", "", "worker name (required)")
	workerAddCmd.Flags().StringVar(&workerAddSpecialty, "specialty", "", "worker specialty (required)")
	workerAddCmd.Flags().StringVar(&workerAddPhone, "phone", "", "phone number")
	workerAddCmd.Flags().StringVar(&workerAddEmail, "email", "", "email address")
	workerAddCmd.Flags().StringVar(&workerAddPhoto, "photo", "", "profile image file")

	workerAddCmd.MarkFlagRequired("name")
	workerAddCmd.MarkFlagRequired("specialty")
}
