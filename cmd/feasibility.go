package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/feasibility"
	"github.com/abhisek/studyplan/pkg/timeutil"
)

var feasibilityCmd = &cobra.Command{
	Use:   "feasibility",
	Short: "Check whether the workload fits the available study time",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		start, err := parseDateFlag(cmd, "start", now)
		if err != nil {
			return err
		}
		end, err := parseDateFlag(cmd, "end", now.AddDate(0, 0, 13))
		if err != nil {
			return err
		}

		ctx := context.Background()
		svc, s, err := openService(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := svc.ComputeFeasibility(ctx, userID(cmd), start, end)
		if err != nil {
			return err
		}

		printReport(report, start, end)
		return nil
	},
}

func printReport(r *feasibility.Report, start, end time.Time) {
	fmt.Printf("Feasibility %s to %s\n", timeutil.DateKey(start), timeutil.DateKey(end))
	fmt.Printf("  Status:      %s\n", statusLabel(r.Status))
	fmt.Printf("  Needed:      %.1fh\n", r.HoursNeeded)
	fmt.Printf("  Available:   %.1fh\n", r.HoursAvailable)
	fmt.Printf("  Utilization: %.0f%%\n", r.Utilization*100)

	if len(r.Weeks) > 0 {
		fmt.Println("\n  Week by week:")
		for _, w := range r.Weeks {
			fmt.Printf("    %s - %s  %5.1fh / %5.1fh  %s\n",
				timeutil.DateKey(w.Start), timeutil.DateKey(w.End),
				w.RequiredHours, w.AvailableHours, w.Band)
		}
	}

	if len(r.Recommendations) > 0 {
		fmt.Println()
		for _, rec := range r.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

func statusLabel(s feasibility.Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func init() {
	feasibilityCmd.Flags().String("start", "", "Range start, YYYY-MM-DD (default today)")
	feasibilityCmd.Flags().String("end", "", "Range end, YYYY-MM-DD (default two weeks out)")
}
