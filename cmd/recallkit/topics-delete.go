package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/audit"
	"github.com/recallkit/recallkit/pkg/deck"
)

var topicsDeleteCmd = &cobra.Command{
	Use:   "delete <topic>",
	Short: "Delete a flashcard set",
	Long: `Delete a flashcard set's JSON and TSV files and refresh the index.

Example:
  recallkit topics delete python`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		topic := args[0]
		library := deck.NewLibrary(mustLoadConfig().BuildDir)

		err := library.Delete(topic)
		audit.Log(audit.TopicDeleteEvent{
			Actor:        "cli",
			ClientIP:     "-",
			Topic:        topic,
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete topic: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", topic)
	},
}

func init() {
	topicsCmd.AddCommand(topicsDeleteCmd)
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
