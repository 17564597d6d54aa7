package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var redistributeCmd = &cobra.Command{
	Use:   "redistribute",
	Short: "Move missed sessions onto upcoming days",
	RunE: func(cmd *cobra.Command, args []string) error {
		reflection, _ := cmd.Flags().GetString("reflection")
		asOf, err := parseDateFlag(cmd, "as-of", time.Now())
		if err != nil {
			return err
		}

		ctx := context.Background()
		svc, s, err := openService(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := svc.RedistributeIncomplete(ctx, userID(cmd), asOf, reflection)
		if err != nil {
			return err
		}

		if len(result.Placed) == 0 && len(result.Unplaced) == 0 {
			fmt.Println("Nothing to redistribute.")
			return nil
		}

		if result.Note != "" {
			fmt.Println(result.Note)
		}
		for _, sess := range result.Placed {
			fmt.Printf("  moved %s / %s to %s %s\n", sess.Subject, sess.Topic, sess.Date, sess.StartTime)
		}
		for _, sess := range result.Unplaced {
			fmt.Printf("  could not place %s / %s; no room before the horizon\n", sess.Subject, sess.Topic)
		}
		return nil
	},
}

func init() {
	redistributeCmd.Flags().String("as-of", "", "Treat this date as today, YYYY-MM-DD")
	redistributeCmd.Flags().String("reflection", "", "Why the sessions were missed, passed to the planner")
}
