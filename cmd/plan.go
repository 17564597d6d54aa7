package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/timetable"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study timetable from topics and availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		start, err := parseDateFlag(cmd, "start", now)
		if err != nil {
			return err
		}
		end, err := parseDateFlag(cmd, "end", now.AddDate(0, 0, 6))
		if err != nil {
			return err
		}

		ctx := context.Background()
		svc, s, err := openService(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tt, err := svc.GenerateTimetable(ctx, userID(cmd), start, end)
		if err != nil {
			return err
		}

		printSchedule(tt.Schedule)
		return nil
	},
}

func printSchedule(schedule timetable.Schedule) {
	for _, date := range schedule.Dates() {
		sessions := schedule[date]
		if len(sessions) == 0 {
			fmt.Printf("%s  (free)\n", date)
			continue
		}
		fmt.Println(date)
		for _, sess := range sessions {
			fmt.Printf("  %s  %s / %s  %dmin", sess.StartTime, sess.Subject, sess.Topic, sess.DurationMinutes)
			if sess.Note != "" {
				fmt.Printf("  (%s)", sess.Note)
			}
			fmt.Println()
		}
	}
}

func init() {
	planCmd.Flags().String("start", "", "Schedule start, YYYY-MM-DD (default today)")
	planCmd.Flags().String("end", "", "Schedule end, YYYY-MM-DD (default one week out)")
}
