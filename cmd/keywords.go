package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/placepulse/place-audit/internal/competitor"
	"github.com/placepulse/place-audit/internal/keyword"
)

var (
	keywordsName            string
	keywordsWithCompetitors bool
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [place-id or URL]",
	Short: "Recommend search keywords for a place listing",
	Long:  "Consolidates the listing's current keywords and recommends new ones from location and category rules, optionally refined by a language model and competitor keyword sets.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && keywordsName == "" {
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

		acq, err := env.acquire(ctx, input, keywordsName)
		if err != nil {
			return err
		}

		var compKeywords []keyword.CompetitorKeywords
		if keywordsWithCompetitors {
			sub := competitor.SubjectFromRecord(acq.PlaceID, acq.Record, acq.SecondaryAddress)
			competitors, err := env.Discovery.Discover(ctx, sub)
			if err != nil {
				return eris.Wrap(err, "competitor discovery")
			}
			for _, c := range competitors {
				if len(c.Record.Keywords) == 0 {
					continue
				}
				compKeywords = append(compKeywords, keyword.CompetitorKeywords{
					Name:     c.Record.Name,
					Keywords: c.Record.Keywords,
				})
			}
		}

		rec := env.Analyzer.Analyze(ctx, acq.Record, compKeywords)

		zap.L().Info("keyword analysis complete",
			zap.String("place_id", acq.PlaceID),
			zap.Int("current", len(rec.Current)),
			zap.Int("recommended", len(rec.Recommended)),
		)

		return printJSON(rec)
	},
}

func init() {
	keywordsCmd.Flags().StringVar(&keywordsName, "name", "", "look the place up by display name instead of ID/URL")
	keywordsCmd.Flags().BoolVar(&keywordsWithCompetitors, "competitors", false, "include competitor keyword sets in the analysis")
	rootCmd.AddCommand(keywordsCmd)
}
