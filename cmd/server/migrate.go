package main

import (
	"errors"
	"log/slog"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"Quill/internal/db/migrations"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Manage the database schema",
		Long:      "Apply, roll back or inspect the embedded SQL migrations. Defaults to up.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE:      migrateCommand,
	}

	cobraflags.RegisterMap(migrateCmd, rootFlags)
	return migrateCmd
}

func migrateCommand(cmd *cobra.Command, args []string) error {
	command := "up"
	if len(args) == 1 {
		command = args[0]
	}
	switch command {
	case "up", "down", "status":
	default:
		return errors.New("migrate: expected one of up, down, status")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database_url is required (QUILL_DATABASE_URL or DATABASE_URL)")
	}

	db, err := openDB(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Run(cmd.Context(), db, command); err != nil {
		return err
	}
	slog.Info("migrate finished", slog.String("command", command))
	return nil
}
