package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/toolcost/internal/catalog"
	"github.com/Simplici0/toolcost/internal/config"
	"github.com/Simplici0/toolcost/internal/db"
	"github.com/Simplici0/toolcost/internal/migrations"
	"github.com/Simplici0/toolcost/internal/seed"
)

func newPresetsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the reference tool presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openCatalog(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			presets, err := catalog.New(database).List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tKIND\tNOTES")
			for _, p := range presets {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Slug, p.Spec.Name, p.Spec.Kind.Label(), p.Notes)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default DB_PATH or ./toolcost.db)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and seed the preset catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openCatalog(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			version, err := migrations.Version(database)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return err
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default DB_PATH or ./toolcost.db)")
	return cmd
}

// openCatalog opens the database, brings the schema up to date and seeds the
// default presets.
func openCatalog(ctx context.Context, dbPath string) (*sql.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if dbPath == "" {
		cfg := config.Load()
		cfg.LogWarnings(slog.Default())
		dbPath = cfg.DBPath
	}

	database, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(database); err != nil {
		database.Close()
		return nil, err
	}

	stats, err := seed.Run(database, seed.Defaults)
	if err != nil {
		database.Close()
		return nil, err
	}
	slog.Info("preset catalog ready", "path", dbPath, "inserted", stats.Inserts)

	return database, nil
}
