package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/leitner"
	"github.com/recallkit/recallkit/pkg/server/store"
	"github.com/recallkit/recallkit/pkg/study"
)

var progressShowCmd = &cobra.Command{
	Use:   "show <profile>",
	Short: "Show a profile's progress document",
	Long: `Show a profile's progress document, or its Leitner box counts with --stats.

Example:
  recallkit progress show alice
  recallkit progress show alice --stats --topic python`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		withStats, _ := cmd.Flags().GetBool("stats")
		topic, _ := cmd.Flags().GetString("topic")

		progressStore, _, err := openProgressStore(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open progress store: %v\n", err)
			os.Exit(1)
		}

		if withStats {
			intervals, err := cfg.Intervals()
			if err == nil {
				var scheduler *leitner.Scheduler
				scheduler, err = leitner.NewScheduler().WithIntervals(intervals)
				if err == nil {
					svc := study.NewService(deck.NewLibrary(cfg.BuildDir), progressStore, scheduler)
					err = showStats(os.Stdout, svc, args[0], topic)
				}
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to show stats: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := showProgress(os.Stdout, progressStore, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show progress: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressShowCmd.Flags().Bool("stats", false, "Show Leitner box counts instead of the raw document")
	progressShowCmd.Flags().StringP("topic", "t", "", "Restrict --stats to one topic")
}

func showProgress(w io.Writer, progressStore store.ProgressStore, profile string) error {
	doc, err := progressStore.GetProgress(profile)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = store.Document{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func showStats(w io.Writer, svc *study.Service, profile, topic string) error {
	stats, err := svc.Stats(profile, topic)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Cards: %d (new %d, due %d)\n", stats.Total, stats.New, stats.Due)
	for _, b := range leitner.BoxValues() {
		fmt.Fprintf(w, "  box %-5s %d\n", b.String(), stats.Boxes[b.String()])
	}
	return nil
}
