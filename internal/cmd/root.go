package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/symptom-diary/backend/config"
	"github.com/pageza/symptom-diary/backend/internal/database"
	"github.com/pageza/symptom-diary/backend/internal/logging"
)

// globals holds the flags shared by every subcommand and the lazily
// loaded configuration.
type globals struct {
	sqlitePath string
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRootCmd builds the dashctl command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Maintain the symptom diary database and render dashboard reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
	}
	root.PersistentFlags().StringVar(&g.sqlitePath, "sqlite", "", "use the sqlite database at this path instead of postgres")

	root.AddCommand(newMigrateCmd(g), newSeedCmd(g), newReportCmd(g))
	return root
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (g *globals) load() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	g.cfg, g.logger = cfg, logger
	return nil
}

// openDB opens the diary database and brings its schema up to date.
func (g *globals) openDB(ctx context.Context) (*gorm.DB, func(), error) {
	var (
		db  *gorm.DB
		err error
	)
	if g.sqlitePath != "" {
		db, err = database.OpenSQLite(g.sqlitePath)
	} else {
		db, err = database.Open(g.cfg, g.logger)
	}
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if err := database.RunMigrations(ctx, db, g.cfg.MigrationsDir, g.cfg.DBSchema, g.logger); err != nil {
		closeDB()
		return nil, nil, err
	}
	return db, closeDB, nil
}
