package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/server"
	"github.com/recallkit/recallkit/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8502"
}

func defaultPortInt() int {
	if p, err := strconv.Atoi(defaultPort()); err == nil {
		return p
	}
	return 8502
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the RecallKit application server",
	Long: `Run the RecallKit application server.

Progress is kept under RECALLKIT_DATA_DIR unless RECALLKIT_DATABASE_URL is
set, in which case database migrations are run on startup. Use --no-migrate
to skip them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if cfg.DatabaseURL != "" && !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		progressStore, healthStore, err := openProgressStore(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open progress store: %v\n", err)
			os.Exit(1)
		}

		library := deck.NewLibrary(cfg.BuildDir)
		if _, err := library.WriteIndex(); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to prepare build directory: %v\n", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s, err := server.NewServer(cfg, library, progressStore, healthStore, host, port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to create server: %v\n", err)
			os.Exit(1)
		}

		endpoints.RegisterAll(s)

		if !cfg.AuthEnabled() {
			log.Println("RECALLKIT_API_TOKEN is not set; write endpoints are unauthenticated")
		}

		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			log.Println("Shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = s.Shutdown(ctx)
		}()

		log.Printf("Running server at http://%s...\n", s.Addr())
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
