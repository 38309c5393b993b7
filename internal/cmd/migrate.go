package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/symptom-diary/backend/internal/database"
)

func newMigrateCmd(g *globals) *cobra.Command {
	var (
		dir      string
		rollback bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations, or roll back the last one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if dir != "" {
				g.cfg.MigrationsDir = dir
			}

			if g.sqlitePath != "" {
				if rollback {
					return errors.New("rollback is only supported on postgres")
				}
				_, closeDB, err := g.openDB(ctx)
				if err != nil {
					return err
				}
				defer closeDB()
				fmt.Fprintf(out, "sqlite schema at %s is up to date\n", g.sqlitePath)
				return nil
			}

			db, err := database.NewSQL(g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if rollback {
				name, err := database.RollbackLastMigration(ctx, db.DB, g.cfg.MigrationsDir, g.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Rolled back migration: %s\n", name)
				return nil
			}

			applied, err := database.ApplySQLMigrations(ctx, db.DB, g.cfg.MigrationsDir, g.cfg.DBSchema, g.logger)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(out, "No pending migrations")
			}
			for _, name := range applied {
				fmt.Fprintf(out, "Applied migration: %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the last applied migration")
	return cmd
}
