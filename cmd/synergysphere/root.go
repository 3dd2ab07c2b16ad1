package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/synergysphere/synergysphere/db"
	"github.com/synergysphere/synergysphere/internal/config"
	"github.com/synergysphere/synergysphere/internal/logging"
)

func newRootCmd(log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "synergysphere",
		Short:         "SynergySphere - team project collaboration API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(log), newMigrateCmd(log))
	return root
}

func newMigrateCmd(log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(log)
			if err != nil {
				return err
			}

			conn, err := db.ConnectDatabase(cfg.Database, log)
			if err != nil {
				return err
			}

			if err := db.MigrateDatabase(conn); err != nil {
				return err
			}

			log.Info().Msg("database migrated")
			return nil
		},
	}
}

func loadConfig(base zerolog.Logger) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, base, err
	}

	log, err := logging.ForEnv(base, cfg.Env)
	if err != nil {
		return nil, base, err
	}

	return cfg, log.With().Str("env", cfg.Env).Logger(), nil
}
