package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeName        string
	analyzeCompetitors bool
	analyzeSave        bool
	analyzeFormat      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [place-id or URL]",
	Short: "Fetch and score a single place listing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && analyzeName == "" {
			return eris.New("a place ID/URL argument or --name is required")
		}
		ctx := cmd.Context()

		env, err := initAudit(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var input string
		if len(args) > 0 {
			input = args[0]
		}

		report, err := env.buildReport(ctx, input, analyzeName, analyzeCompetitors)
		if err != nil {
			return err
		}

		if analyzeSave {
			if err := env.Store.SaveReport(ctx, report); err != nil {
				return eris.Wrap(err, "save report")
			}
		}

		zap.L().Info("analysis complete",
			zap.String("place_id", report.PlaceID),
			zap.String("name", report.Name),
			zap.Int("total_score", report.TotalScore),
			zap.Int("competitors", len(report.Competitors)),
			zap.Bool("saved", analyzeSave),
		)

		if analyzeFormat == "table" {
			return printReportTable(report)
		}
		return printJSON(report)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "look the place up by display name instead of ID/URL")
	analyzeCmd.Flags().BoolVar(&analyzeCompetitors, "competitors", false, "discover and score nearby competitors")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the report to the store")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "output format: json or table")
	rootCmd.AddCommand(analyzeCmd)
}
