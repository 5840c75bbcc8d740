package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Manage flashcard sets",
	Long:  `List and delete the flashcard sets in the build directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'topics' requires a subcommand (list, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
