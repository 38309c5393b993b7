package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/symptom-diary/backend/internal/database"
	"github.com/pageza/symptom-diary/backend/internal/pipeline"
)

func newSeedCmd(g *globals) *cobra.Command {
	var (
		firstAccount int64
		accounts     int
		days         int
		start        string
		seed         int64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with generated demo diaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if accounts < 1 || days < 1 {
				return fmt.Errorf("--accounts and --days must be positive")
			}
			from := time.Now().UTC().AddDate(0, 0, -days)
			if start != "" {
				d, err := pipeline.ParseDay(start)
				if err != nil {
					return err
				}
				from = d
			}

			db, closeDB, err := g.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			diaries := make([]database.SeedDiary, accounts)
			for i := range diaries {
				id := firstAccount + int64(i)
				diaries[i] = database.DemoDiary(id, from, days, seed+id)
			}
			if err := database.Seed(cmd.Context(), db, diaries...); err != nil {
				return err
			}

			for _, d := range diaries {
				g.logger.Info("seeded account",
					zap.Int64("account_id", d.AccountID), zap.Int("meals", len(d.Meals)), zap.Int("reports", len(d.Reports)))
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded account %d: %d meals, %d reports\n", d.AccountID, len(d.Meals), len(d.Reports))
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&firstAccount, "first-account", 1, "id of the first generated account")
	cmd.Flags().IntVar(&accounts, "accounts", 3, "number of accounts to generate")
	cmd.Flags().IntVar(&days, "days", 60, "number of diary days per account")
	cmd.Flags().StringVar(&start, "start", "", "first diary day, YYYY-MM-DD (defaults to --days ago)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
