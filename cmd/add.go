package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/recurrence"
	"github.com/abhisek/studyplan/pkg/timeutil"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add subjects, topics, commitments, and availability",
}

var addSubjectCmd = &cobra.Command{
	Use:   "subject <name>",
	Short: "Add a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sub := models.Subject{ID: uuid.NewString(), UserID: userID(cmd), Name: args[0]}
		if err := s.CreateSubject(context.Background(), sub); err != nil {
			return err
		}
		fmt.Printf("Added subject %q (%s)\n", sub.Name, sub.ID)
		return nil
	},
}

var addTopicCmd = &cobra.Command{
	Use:   "topic <subject> <name>",
	Short: "Add a topic under a subject",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		confidence, _ := cmd.Flags().GetInt("confidence")
		if confidence < 1 || confidence > 10 {
			return fmt.Errorf("confidence must be between 1 and 10, got %d", confidence)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		uid := userID(cmd)

		subjects, err := s.ListSubjects(ctx, uid)
		if err != nil {
			return err
		}
		var subjectID string
		for _, sub := range subjects {
			if sub.Name == args[0] {
				subjectID = sub.ID
				break
			}
		}
		if subjectID == "" {
			return fmt.Errorf("unknown subject %q; add it first", args[0])
		}

		topic := models.Topic{
			ID:         uuid.NewString(),
			UserID:     uid,
			SubjectID:  subjectID,
			Name:       args[1],
			Confidence: confidence,
		}
		if err := s.CreateTopic(ctx, topic); err != nil {
			return err
		}
		fmt.Printf("Added topic %q under %q (confidence %d)\n", topic.Name, args[0], confidence)
		return nil
	},
}

var addEventCmd = &cobra.Command{
	Use:   "event <title>",
	Short: "Add a committed event, optionally recurring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		repeat, _ := cmd.Flags().GetString("repeat")
		untilStr, _ := cmd.Flags().GetString("until")

		start, err := time.Parse("2006-01-02 15:04", startStr)
		if err != nil {
			return fmt.Errorf("invalid --start (want \"YYYY-MM-DD HH:MM\"): %w", err)
		}
		end, err := time.Parse("2006-01-02 15:04", endStr)
		if err != nil {
			return fmt.Errorf("invalid --end (want \"YYYY-MM-DD HH:MM\"): %w", err)
		}

		base := recurrence.Interval{Start: start, End: end}
		if err := base.Validate(); err != nil {
			return err
		}

		rule := recurrence.NoRepeat
		if repeat != "" {
			rule.Freq = recurrence.Frequency(repeat)
			if untilStr != "" {
				until, err := timeutil.ParseDateKey(untilStr)
				if err != nil {
					return fmt.Errorf("invalid --until: %w", err)
				}
				rule.Until = until
			}
			if err := rule.Validate(base); err != nil {
				return err
			}
		}

		event := models.Event{
			ID:         uuid.NewString(),
			UserID:     userID(cmd),
			Title:      args[0],
			Start:      start,
			End:        end,
			Recurrence: rule,
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.CreateEvent(context.Background(), event); err != nil {
			return err
		}
		fmt.Printf("Added event %q\n", event.Title)
		return nil
	},
}

var addHomeworkCmd = &cobra.Command{
	Use:   "homework <title>",
	Short: "Add a homework assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		dueStr, _ := cmd.Flags().GetString("due")
		minutes, _ := cmd.Flags().GetInt("minutes")

		due, err := timeutil.ParseDateKey(dueStr)
		if err != nil {
			return fmt.Errorf("invalid --due: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		hw := models.Homework{
			ID:              uuid.NewString(),
			UserID:          userID(cmd),
			Title:           args[0],
			Subject:         subject,
			Due:             due,
			DurationMinutes: minutes,
		}
		if err := s.CreateHomework(context.Background(), hw); err != nil {
			return err
		}
		fmt.Printf("Added homework %q due %s\n", hw.Title, dueStr)
		return nil
	},
}

var addTestCmd = &cobra.Command{
	Use:   "test <title>",
	Short: "Add an upcoming test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		dateStr, _ := cmd.Flags().GetString("date")

		date, err := timeutil.ParseDateKey(dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		td := models.TestDate{
			ID:      uuid.NewString(),
			UserID:  userID(cmd),
			Title:   args[0],
			Subject: subject,
			Date:    date,
		}
		if err := s.CreateTestDate(context.Background(), td); err != nil {
			return err
		}
		fmt.Printf("Added test %q on %s\n", td.Title, dateStr)
		return nil
	},
}

var addSlotCmd = &cobra.Command{
	Use:   "slot <start> <end>",
	Short: "Add a weekly availability slot (HH:MM times)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		daily, _ := cmd.Flags().GetBool("daily")
		weekdayStr, _ := cmd.Flags().GetString("weekday")

		slot := models.AvailabilitySlot{
			ID:        uuid.NewString(),
			UserID:    userID(cmd),
			Daily:     daily,
			Enabled:   true,
			StartTime: args[0],
			EndTime:   args[1],
		}
		if !daily {
			day, err := parseWeekday(weekdayStr)
			if err != nil {
				return err
			}
			slot.Weekday = day
		}
		if slot.Minutes() == 0 {
			return fmt.Errorf("slot %s-%s has no usable duration", args[0], args[1])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		uid := userID(cmd)
		existing, err := s.ListAvailability(ctx, uid)
		if err != nil {
			return err
		}
		if err := s.ReplaceAvailability(ctx, uid, append(existing, slot)); err != nil {
			return err
		}
		fmt.Printf("Added availability slot %s-%s\n", args[0], args[1])
		return nil
	},
}

func parseWeekday(name string) (time.Weekday, error) {
	days := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	if d, ok := days[name]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

func init() {
	addTopicCmd.Flags().Int("confidence", 5, "Self-rated confidence, 1 (shaky) to 10 (solid)")

	addEventCmd.Flags().String("start", "", "Start, \"YYYY-MM-DD HH:MM\"")
	addEventCmd.Flags().String("end", "", "End, \"YYYY-MM-DD HH:MM\"")
	addEventCmd.Flags().String("repeat", "", "Recurrence: daily, weekly, or monthly")
	addEventCmd.Flags().String("until", "", "Last date a recurring event repeats, YYYY-MM-DD")

	addHomeworkCmd.Flags().String("subject", "", "Subject name")
	addHomeworkCmd.Flags().String("due", "", "Due date, YYYY-MM-DD")
	addHomeworkCmd.Flags().Int("minutes", 60, "Estimated duration in minutes")

	addTestCmd.Flags().String("subject", "", "Subject name")
	addTestCmd.Flags().String("date", "", "Test date, YYYY-MM-DD")

	addSlotCmd.Flags().Bool("daily", false, "Apply the slot to every day of the week")
	addSlotCmd.Flags().String("weekday", "monday", "Weekday for a non-daily slot")

	addCmd.AddCommand(addSubjectCmd)
	addCmd.AddCommand(addTopicCmd)
	addCmd.AddCommand(addEventCmd)
	addCmd.AddCommand(addHomeworkCmd)
	addCmd.AddCommand(addTestCmd)
	addCmd.AddCommand(addSlotCmd)
}
