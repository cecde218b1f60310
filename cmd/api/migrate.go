package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"project-catalog/internal/config"
	"project-catalog/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB(loadConfig())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		log.Info().Str("driver", db.DriverName()).Msg("Migrations applied")
		return nil
	},
}
