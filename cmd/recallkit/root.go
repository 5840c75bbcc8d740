package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/config"
	"github.com/recallkit/recallkit/pkg/db"
	"github.com/recallkit/recallkit/pkg/server/store"
	"github.com/recallkit/recallkit/pkg/server/store/file"
	gormstore "github.com/recallkit/recallkit/pkg/server/store/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "recallkit",
	Short: "Markdown flashcards with Leitner review",
	Long: `RecallKit turns Markdown notes into flashcard sets (JSON and Quizlet TSV)
and serves a study interface backed by a Leitner scheduler.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// mustLoadConfig loads and validates configuration or exits
func mustLoadConfig() *config.RecallKitConfig {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openProgressStore picks the postgres store when a database URL is
// configured and the filesystem store otherwise.
func openProgressStore(cfg *config.RecallKitConfig) (store.ProgressStore, store.HealthStore, error) {
	if cfg.DatabaseURL == "" {
		s, err := file.NewProgressStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}

	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, nil, err
	}
	return gormstore.NewProgressStore(database), gormstore.NewHealthStore(database), nil
}
