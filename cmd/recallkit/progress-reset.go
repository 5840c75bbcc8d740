package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/audit"
)

var progressResetCmd = &cobra.Command{
	Use:   "reset <profile>",
	Short: "Delete a profile's progress document",
	Long: `Delete a profile's progress document, including its Leitner state.

Example:
  recallkit progress reset alice`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := args[0]
		progressStore, _, err := openProgressStore(mustLoadConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open progress store: %v\n", err)
			os.Exit(1)
		}

		err = progressStore.DeleteProgress(profile)
		audit.Log(audit.ProgressEvent{
			Actor:        "cli",
			ClientIP:     "-",
			Profile:      profile,
			Operation:    "delete",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reset progress of %s\n", profile)
	},
}

func init() {
	progressCmd.AddCommand(progressResetCmd)
}
