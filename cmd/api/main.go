package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"project-catalog/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-api",
	Short: "Project catalog API with approval workflow and live notifications",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetupLogger(loadConfig())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), loadConfig())
	},
	SilenceUsage: true,
}

var cfg *config.Config

func loadConfig() *config.Config {
	if cfg == nil {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("No .env file found, using environment variables")
		}
		cfg = config.Load()
	}
	return cfg
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
