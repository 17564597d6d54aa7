package oracle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/studyplan/internal/timetable"
)

const redistributionSystemPrompt = `You are a study planner helping a school student catch up on missed study sessions. You decide which missed sessions matter most and which upcoming days should absorb them, keeping the workload balanced.`

func buildRedistributionUserMessage(req timetable.OracleRequest, maxPerDay int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Today: %s\n", req.AsOf))

	if req.Reflection != "" {
		b.WriteString(fmt.Sprintf("Student's note about why sessions were missed: %s\n", req.Reflection))
	}

	b.WriteString("\nMissed Sessions:\n")
	for _, s := range req.Incomplete {
		b.WriteString(fmt.Sprintf("- %s / %s (%d min, originally %s)\n",
			s.Subject, s.Topic, s.DurationMinutes, s.Date))
	}

	b.WriteString("\nCandidate Dates (with sessions already planned):\n")
	dates := make([]string, len(req.CandidateDates))
	copy(dates, req.CandidateDates)
	sort.Strings(dates)
	for _, d := range dates {
		b.WriteString(fmt.Sprintf("- %s: %d existing sessions\n", d, req.LoadPerDate[d]))
	}

	b.WriteString(fmt.Sprintf(`
Instructions:
1. Place every missed session on one of the candidate dates. Use only dates from the list above.
2. Add at most %d sessions to any single date. Prefer lightly loaded days.
3. Schedule subjects with upcoming tests or weaker topics earlier.
4. Copy subject and topic names exactly as given. Do not invent sessions.
5. Shorten a session (minimum 15 minutes) only when squeezing it onto a busy day; otherwise keep its original duration.`, maxPerDay))

	return b.String()
}
