package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// progressCmd represents the progress command
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect and reset study progress",
	Long:  `Inspect and reset per-profile progress documents.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'progress' requires a subcommand (show, reset)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
