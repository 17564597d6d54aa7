package feasibility

import "fmt"

// recommend produces the advisory strings for a report. The wording is
// informational only; callers key behavior off Status and Band, never
// off these strings.
func recommend(status Status, overwhelmingWeeks int) []string {
	var recs []string

	switch status {
	case StatusOverScheduled:
		recs = append(recs,
			"Your planned workload exceeds your available study time. Consider trimming low-priority topics or adding availability slots.",
			"Start with the subjects you rated lowest confidence in; they need the most time.",
		)
	case StatusOptimal:
		recs = append(recs,
			"Your schedule is tightly packed but achievable. Protect your existing availability slots.",
		)
	case StatusBalanced:
		recs = append(recs,
			"Your workload fits comfortably in the available time. Keep sessions spread across the week rather than bunched.",
		)
	case StatusUnderUtilized:
		recs = append(recs,
			"You have more study time available than the workload needs. Consider pulling future topics forward or adding review sessions.",
		)
	}

	switch {
	case overwhelmingWeeks == 1:
		recs = append(recs, "One week in this period is overloaded; shift some of its sessions into a lighter week.")
	case overwhelmingWeeks > 1:
		recs = append(recs, fmt.Sprintf("%d weeks in this period are overloaded; spread the workload toward lighter weeks or extend the period.", overwhelmingWeeks))
	}

	return recs
}
