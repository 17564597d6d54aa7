package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/pkg/timeutil"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Track spaced repetition reviews",
}

var reviewDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List topics due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, s, err := openService(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		due, err := svc.DueTopics(ctx, userID(cmd), time.Now())
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("Nothing due for review.")
			return nil
		}

		fmt.Println("Due for review (most overdue first):")
		for _, p := range due {
			fmt.Printf("  %s  tier=%s  success=%.0f%%  due since %s\n",
				p.TopicID, p.Tier, p.SuccessRate(), timeutil.DateKey(p.NextReviewDate))
		}
		return nil
	},
}

var reviewRecordCmd = &cobra.Command{
	Use:   "record <topic-id>",
	Short: "Record the outcome of a review session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed, _ := cmd.Flags().GetBool("failed")

		ctx := context.Background()
		svc, s, err := openService(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		progress, err := svc.RecordSessionOutcome(ctx, userID(cmd), args[0], !failed, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Recorded. Tier %s, next review %s.\n",
			progress.Tier, timeutil.DateKey(progress.NextReviewDate))
		return nil
	},
}

func init() {
	reviewRecordCmd.Flags().Bool("failed", false, "Mark the session as unsuccessful")

	reviewCmd.AddCommand(reviewDueCmd)
	reviewCmd.AddCommand(reviewRecordCmd)
}
