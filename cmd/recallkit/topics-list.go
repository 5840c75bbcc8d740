package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/deck"
)

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flashcard sets",
	Long: `List flashcard sets with their card counts.

Example:
  recallkit topics list`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		library := deck.NewLibrary(mustLoadConfig().BuildDir)
		if err := listTopics(os.Stdout, library); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list topics: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)
}

func listTopics(w io.Writer, library *deck.Library) error {
	topics, err := library.List()
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		_, err = fmt.Fprintln(w, "No flashcard sets yet.")
		return err
	}
	for _, topic := range topics {
		cards, err := library.Load(topic)
		if err != nil {
			fmt.Fprintf(w, "%s\t(unreadable: %v)\n", topic, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d cards\n", topic, len(cards))
	}
	return nil
}
