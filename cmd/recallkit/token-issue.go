package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/server/store"
	"github.com/recallkit/recallkit/pkg/token"
)

var tokenIssueCmd = &cobra.Command{
	Use:   "issue <profile>",
	Short: "Issue a token scoped to one profile",
	Long: `Issue a token that may only modify one profile's progress and reviews.

The token is signed with RECALLKIT_API_TOKEN, which must be set.

Example:
  recallkit token issue alice --ttl 720h`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		cfg := mustLoadConfig()

		tok, err := issueToken(cfg.APIToken, args[0], ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(tok)
	},
}

func init() {
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenIssueCmd.Flags().Duration("ttl", 30*24*time.Hour, "Token lifetime")
}

func issueToken(secret, profile string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("RECALLKIT_API_TOKEN is not set")
	}
	if err := store.ValidateProfile(profile); err != nil {
		return "", err
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive")
	}
	return token.Issue(secret, profile, ttl)
}
