package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/placepulse/place-audit/internal/model"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReportTable(report *model.Report) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s (%s)\ttotal\t%d/100\n", report.Name, report.PlaceID, report.TotalScore)

	rows := []struct {
		label string
		cat   model.CategoryScore
	}{
		{"basic info", report.Score.Details.BasicInfo},
		{"photos", report.Score.Details.Photos},
		{"reviews", report.Score.Details.Reviews},
		{"menu", report.Score.Details.Menu},
		{"keywords", report.Score.Details.Keywords},
		{"activity", report.Score.Details.Activity},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d/%d\t%s\n", r.label, r.cat.Score, r.cat.Max, r.cat.Status)
	}

	for _, c := range report.Competitors {
		fmt.Fprintf(w, "competitor\t%s\t%d/100\t%.1f km\n",
			c.Record.Name, c.Score.Total, c.DistanceKm)
	}

	return w.Flush()
}
