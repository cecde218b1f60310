package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"project-catalog/internal/config"
	"project-catalog/internal/repository"
	"project-catalog/internal/service/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an access token for an existing user (development only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if !cfg.IsDevelopment() {
			return fmt.Errorf("token issuing is only available in development")
		}

		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user ID: %w", err)
		}

		db, err := config.NewDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		authService := auth.NewService(repository.NewRepositories(db).User, cfg)
		user, err := authService.GetUserByID(cmd.Context(), userID)
		if err != nil {
			return err
		}

		token, err := authService.IssueAccessToken(user)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
