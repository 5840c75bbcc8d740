package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/flashcard"
)

// watchDebounce coalesces the burst of events an editor save produces
const watchDebounce = 300 * time.Millisecond

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <notes-dir>",
	Short: "Rebuild a flashcard set whenever its notes change",
	Long: `Watch a directory of Markdown notes and rebuild the topic's flashcard set
whenever a .md file in it is written, created, removed or renamed.

The topic defaults to the directory's base name.

Example:
  recallkit watch ./notes/python
  recallkit watch ./notes -t python`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" {
			abs, err := filepath.Abs(dir)
			if err == nil {
				topic = filepath.Base(abs)
			}
		}

		library := deck.NewLibrary(mustLoadConfig().BuildDir)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := watchNotes(ctx, library, dir, topic); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch notes: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringP("topic", "t", "", "Topic to rebuild (default: directory name)")
}

// markdownFiles lists the .md files directly inside dir, sorted
func markdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && isMarkdown(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

// rebuildTopic converts every note in dir into the topic's flashcard set
func rebuildTopic(library *deck.Library, dir, topic string) (int, error) {
	paths, err := markdownFiles(dir)
	if err != nil {
		return 0, err
	}
	sources, err := flashcard.ReadSources(paths)
	if err != nil {
		return 0, err
	}
	out, err := flashcard.BuildOutputs(sources)
	if err != nil {
		return 0, err
	}
	return library.Save(topic, out)
}

func watchNotes(ctx context.Context, library *deck.Library, dir, topic string) error {
	if err := deck.ValidateTopic(topic); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	rebuild := func() {
		count, err := rebuildTopic(library, dir, topic)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rebuilding %s: %v\n", topic, err)
			return
		}
		fmt.Printf("[%s] Rebuilt %s with %d flashcards\n", time.Now().Format(time.RFC3339), topic, count)
	}

	rebuild()
	fmt.Printf("Watching %s for changes (topic: %s)\n", dir, topic)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isMarkdown(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending = time.After(watchDebounce)
			}
		case <-pending:
			pending = nil
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-ctx.Done():
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
