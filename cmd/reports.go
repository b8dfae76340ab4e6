package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/placepulse/place-audit/internal/store"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect saved audit reports",
}

var (
	reportsPlaceID string
	reportsLimit   int
	reportsOffset  int
)

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		summaries, err := st.ListReports(ctx, store.ReportFilter{
			PlaceID: reportsPlaceID,
			Limit:   reportsLimit,
			Offset:  reportsOffset,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPLACE\tNAME\tSCORE\tCREATED")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				s.ID, s.PlaceID, s.Name, s.TotalScore, s.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var reportsGetCmd = &cobra.Command{
	Use:   "get <report-id>",
	Short: "Print one saved report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		report, err := st.GetReport(ctx, args[0])
		if err != nil {
			return err
		}
		if report == nil {
			return eris.Errorf("report not found: %s", args[0])
		}
		return printJSON(report)
	},
}

var reportsLatestCmd = &cobra.Command{
	Use:   "latest <place-id>",
	Short: "Print the most recent report for a place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		report, err := st.LatestReport(ctx, args[0])
		if err != nil {
			return err
		}
		if report == nil {
			return eris.Errorf("no reports for place: %s", args[0])
		}
		return printJSON(report)
	},
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		if err := st.DeleteReport(ctx, args[0]); err != nil {
			return err
		}
		zap.L().Info("report deleted", zap.String("report_id", args[0]))
		return nil
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsPlaceID, "place-id", "", "filter by place ID")
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", 0, "max rows (default 50)")
	reportsListCmd.Flags().IntVar(&reportsOffset, "offset", 0, "rows to skip")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsGetCmd)
	reportsCmd.AddCommand(reportsLatestCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
	rootCmd.AddCommand(reportsCmd)
}
