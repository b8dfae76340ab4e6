package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/placepulse/place-audit/internal/competitor"
	"github.com/placepulse/place-audit/internal/model"
)

var (
	competitorsName   string
	competitorsRadius float64
)

// competitorsOutput is the command's JSON payload: the resolved subject
// plus the scored competitors, nearest first.
type competitorsOutput struct {
	PlaceID     string                   `json:"place_id"`
	Name        string                   `json:"name"`
	Competitors []model.CompetitorResult `json:"competitors"`
}

var competitorsCmd = &cobra.Command{
	Use:   "competitors [place-id or URL]",
	Short: "Discover and score nearby same-category competitors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && competitorsName == "" {
			return eris.New("a place ID/URL argument or --name is required")
		}
		ctx := cmd.Context()

		if competitorsRadius > 0 {
			cfg.Competitor.RadiusKm = competitorsRadius
		}

		env, err := initAudit(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var input string
		if len(args) > 0 {
			input = args[0]
		}

		acq, err := env.acquire(ctx, input, competitorsName)
		if err != nil {
			return err
		}

		sub := competitor.SubjectFromRecord(acq.PlaceID, acq.Record, acq.SecondaryAddress)
		competitors, err := env.Discovery.Discover(ctx, sub)
		if err != nil {
			return eris.Wrap(err, "competitor discovery")
		}

		zap.L().Info("discovery complete",
			zap.String("place_id", acq.PlaceID),
			zap.Int("competitors", len(competitors)),
		)

		return printJSON(competitorsOutput{
			PlaceID:     acq.PlaceID,
			Name:        acq.Record.Name,
			Competitors: competitors,
		})
	},
}

func init() {
	competitorsCmd.Flags().StringVar(&competitorsName, "name", "", "look the place up by display name instead of ID/URL")
	competitorsCmd.Flags().Float64Var(&competitorsRadius, "radius", 0, "discovery radius in km (default from config)")
	rootCmd.AddCommand(competitorsCmd)
}
