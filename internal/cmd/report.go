package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pageza/symptom-diary/backend/internal/pipeline"
	"github.com/pageza/symptom-diary/backend/internal/service"
)

// Report is what dashctl report prints for an account.
type Report struct {
	Search       *service.SearchResult     `json:"search"`
	Document     *service.ExportDocument   `json:"document,omitempty"`
	TopFoods     *service.FoodsView        `json:"top_foods,omitempty"`
	Combinations *service.CombinationsView `json:"combinations,omitempty"`
}

func newReportCmd(g *globals) *cobra.Command {
	var (
		format   string
		start    string
		end      string
		timespan string
		meal     string
		symptom  string
		size     int
	)
	cmd := &cobra.Command{
		Use:   "report <account-id>",
		Short: "Print the dashboard of an account as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q, want json or yaml", format)
			}
			filter, err := reportFilter(start, end, timespan, meal, symptom, size)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, closeDB, err := g.openDB(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			opts := pipeline.DefaultOptions()
			if g.cfg.MaxCombinationSetSize > 0 {
				opts.MaxCombinationSetSize = g.cfg.MaxCombinationSetSize
			}
			dashboard := service.NewDashboardService(
				service.NewAccountService(db, g.logger), service.NewMemorySessionStore(), opts, g.logger)

			report := &Report{}
			if report.Search, err = dashboard.Search(ctx, args[0]); err != nil {
				return err
			}
			if id := report.Search.SessionID; id != "" {
				if report.Document, err = dashboard.Document(ctx, id, filter); err != nil {
					return err
				}
				report.Document.GeneratedAt = time.Now().UTC()
				if report.TopFoods, err = dashboard.TopFoods(ctx, id, filter); err != nil {
					return err
				}
				if report.Combinations, err = dashboard.Combinations(ctx, id, filter); err != nil {
					return err
				}
			}
			return writeReport(cmd.OutOrStdout(), report, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&start, "start", "", "first day of the window, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last day of the window, YYYY-MM-DD")
	cmd.Flags().StringVar(&timespan, "timespan", "", "custom, all, three_months, four_weeks or one_week")
	cmd.Flags().StringVar(&meal, "meal", "", "meal selector for food counts and combinations")
	cmd.Flags().StringVar(&symptom, "symptom", "", "symptom day selector for food counts and combinations")
	cmd.Flags().IntVar(&size, "size", 0, "combination size")
	return cmd
}

func reportFilter(start, end, timespan, meal, symptom string, size int) (service.ViewFilter, error) {
	var f service.ViewFilter
	var err error
	if f.Range, err = pipeline.ParseDateRange(start, end); err != nil {
		return f, err
	}
	if f.Timespan, err = pipeline.ParseTimespan(timespan); err != nil {
		return f, err
	}
	if f.Selectors.Meal, err = pipeline.ParseMealSelector(meal); err != nil {
		return f, err
	}
	if f.Selectors.Symptom, err = pipeline.ParseSymptomSelector(symptom); err != nil {
		return f, err
	}
	f.CombinationSize = size
	return f, nil
}

// writeReport prints the report. YAML output is converted from the JSON
// encoding so both formats share field names and value rendering.
func writeReport(w io.Writer, report *Report, format string) error {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if format == "json" {
		_, err = fmt.Fprintln(w, string(body))
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("failed to convert report: %w", err)
	}
	blockStyle(&doc)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// blockStyle drops the flow style the JSON input carries.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
