package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/config"
	"github.com/Veraticus/tech-concierge/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the SQLite session database to the latest schema version.

This is only needed for the sqlite session backend; other commands migrate
automatically when they open the database.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()

	if status {
		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		common.LogInfo("Database migration status", common.Fields{
			"database":        dbPath,
			"current_version": current,
			"latest_version":  storage.ExpectedSchemaVersion,
			"up_to_date":      current == storage.ExpectedSchemaVersion,
		})
		return nil
	}

	slog.Info("Running database migrations", "database", dbPath)

	if err := store.Migrate(ctx); err != nil {
		common.LogError(err, "Migration failed", common.Fields{"database": dbPath})
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("Database migrations completed successfully", "version", storage.ExpectedSchemaVersion)
	return nil
}
