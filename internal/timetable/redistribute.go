package timetable

import (
	"context"

	"github.com/abhisek/studyplan/pkg/timeutil"
)

// Config holds the redistribution tuning constants.
type Config struct {
	// MaxInsertsPerDay caps how many redistributed sessions a single
	// date may receive.
	MaxInsertsPerDay int
	// BufferMinutes is the gap left after the previous session.
	BufferMinutes int
	// BaselineStart is the start time used on a day with no sessions.
	BaselineStart string
	// LatestStartMinutes is the last minute-of-day a session may begin;
	// a day whose next slot would start later is treated as full.
	LatestStartMinutes int
}

// DefaultConfig returns the standard redistribution tuning.
func DefaultConfig() Config {
	return Config{
		MaxInsertsPerDay:   3,
		BufferMinutes:      15,
		BaselineStart:      "16:00",
		LatestStartMinutes: 21*60 + 30,
	}
}

// Placement is one session the oracle proposes to insert on a date.
type Placement struct {
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"duration_minutes"`
	Note            string `json:"note,omitempty"`
}

// OracleRequest is the payload submitted to the prioritization oracle.
type OracleRequest struct {
	AsOf           string         `json:"as_of"`
	Reflection     string         `json:"reflection,omitempty"`
	Incomplete     []Session      `json:"incomplete_sessions"`
	CandidateDates []string       `json:"candidate_dates"`
	LoadPerDate    map[string]int `json:"load_per_date"`
}

// OracleResponse is the oracle's proposed redistribution.
type OracleResponse struct {
	Placements map[string][]Placement `json:"placements"`
	Rationale  string                 `json:"rationale"`
}

// Oracle ranks which missed sessions to reschedule first and where.
// Implementations are external and fallible; Redistribute treats any
// error as "oracle unavailable" and falls back to its deterministic
// strategy. A nil Oracle skips straight to the fallback.
type Oracle interface {
	Propose(ctx context.Context, req OracleRequest) (*OracleResponse, error)
}

// Result is the outcome of a redistribution pass.
type Result struct {
	Schedule     Schedule  `json:"schedule"`
	Placed       []Session `json:"placed"`
	Unplaced     []Session `json:"unplaced"`
	UsedFallback bool      `json:"used_fallback"`
	Note         string    `json:"note,omitempty"`
}

// Redistribute reassigns incomplete sessions onto future dates of the
// schedule. Candidate dates are the schedule's existing keys strictly
// after asOf and at most horizonEnd. The input schedule is not mutated;
// moved sessions are removed from their original date and appended to
// their new one. With no candidates or nothing to move, the schedule is
// returned unchanged.
func Redistribute(ctx context.Context, schedule Schedule, incomplete []Session, asOf, horizonEnd string, oracle Oracle, cfg Config) Result {
	if cfg.MaxInsertsPerDay <= 0 {
		cfg = DefaultConfig()
	}

	candidates := candidateDates(schedule, asOf, horizonEnd)
	if len(candidates) == 0 || len(incomplete) == 0 {
		return Result{Schedule: schedule}
	}

	out := schedule.Clone()
	removeSessions(out, incomplete)

	state := &placer{
		schedule:   out,
		candidates: candidates,
		inserted:   make(map[string]int, len(candidates)),
		cfg:        cfg,
	}

	res := Result{Schedule: out}
	remaining := incomplete

	if oracle != nil {
		if proposal, err := oracle.Propose(ctx, OracleRequest{
			AsOf:           asOf,
			Incomplete:     incomplete,
			CandidateDates: candidates,
			LoadPerDate:    loadPerDate(out, candidates),
		}); err == nil && proposal != nil {
			remaining = state.applyProposal(proposal, incomplete, &res)
			res.Note = proposal.Rationale
		} else {
			res.UsedFallback = true
			res.Note = "used fallback scheduling"
		}
	} else {
		res.UsedFallback = true
		res.Note = "used fallback scheduling"
	}

	// Deterministic round-robin over whatever the oracle did not place.
	state.roundRobin(remaining, &res)
	return res
}

// candidateDates lists schedule keys strictly after asOf, up to and
// including horizonEnd, ascending.
func candidateDates(schedule Schedule, asOf, horizonEnd string) []string {
	var out []string
	for _, date := range schedule.Dates() {
		if date > asOf && date <= horizonEnd {
			out = append(out, date)
		}
	}
	return out
}

func loadPerDate(schedule Schedule, dates []string) map[string]int {
	load := make(map[string]int, len(dates))
	for _, d := range dates {
		load[d] = len(schedule[d])
	}
	return load
}

// removeSessions deletes the moved sessions from their original dates,
// matching by ID.
func removeSessions(schedule Schedule, moved []Session) {
	ids := make(map[string]bool, len(moved))
	for _, s := range moved {
		ids[s.ID] = true
	}
	for date, sessions := range schedule {
		kept := sessions[:0]
		for _, s := range sessions {
			if !ids[s.ID] {
				kept = append(kept, s)
			}
		}
		schedule[date] = kept
	}
}

// placer tracks per-date insert counts while sessions are placed.
type placer struct {
	schedule   Schedule
	candidates []string
	inserted   map[string]int
	cfg        Config
}

// hasRoom reports whether date can take one more insert: under the cap
// and with a start time still inside the day.
func (p *placer) hasRoom(date string) bool {
	if p.inserted[date] >= p.cfg.MaxInsertsPerDay {
		return false
	}
	return p.nextStart(date) <= p.cfg.LatestStartMinutes
}

// nextStart computes the minute-of-day the next session on date would
// begin: after the latest existing session plus the buffer, or the
// baseline when the day is empty.
func (p *placer) nextStart(date string) int {
	sessions := p.schedule[date]
	if len(sessions) == 0 {
		base, err := timeutil.ClockMinutes(p.cfg.BaselineStart)
		if err != nil {
			base = 16 * 60
		}
		return base
	}
	last := sessions[len(sessions)-1]
	start, err := timeutil.ClockMinutes(last.StartTime)
	if err != nil {
		start = 16 * 60
	}
	return start + last.DurationMinutes + p.cfg.BufferMinutes
}

// place appends the session to date with a recomputed start time.
func (p *placer) place(sess Session, date string) Session {
	sess.StartTime = timeutil.MinutesClock(p.nextStart(date))
	sess.Date = date
	sess.Completed = false
	p.schedule[date] = append(p.schedule[date], sess)
	p.inserted[date]++
	return sess
}

// applyProposal validates the oracle's placements against the per-day
// cap and commits the valid ones. Proposals are matched back to the
// incomplete sessions by subject and topic; anything the oracle skipped
// or that failed validation is returned for the fallback pass.
func (p *placer) applyProposal(proposal *OracleResponse, incomplete []Session, res *Result) []Session {
	pool := make([]Session, len(incomplete))
	copy(pool, incomplete)

	take := func(subject, topic string) (Session, bool) {
		for i, s := range pool {
			if s.Subject == subject && s.Topic == topic {
				pool = append(pool[:i], pool[i+1:]...)
				return s, true
			}
		}
		return Session{}, false
	}

	for _, date := range p.candidates {
		for _, prop := range proposal.Placements[date] {
			sess, ok := take(prop.Subject, prop.Topic)
			if !ok {
				continue // proposal does not correspond to a missed session
			}
			if !p.hasRoom(date) {
				pool = append(pool, sess) // spills to the fallback pass
				continue
			}
			if prop.DurationMinutes > 0 {
				sess.DurationMinutes = prop.DurationMinutes
			}
			if prop.Note != "" {
				sess.Note = prop.Note
			}
			res.Placed = append(res.Placed, p.place(sess, date))
		}
	}
	return pool
}

// roundRobin distributes sessions across candidate dates in order,
// cycling until every date hits its cap. Sessions that fit nowhere are
// reported unplaced.
func (p *placer) roundRobin(sessions []Session, res *Result) {
	next := 0
	for _, sess := range sessions {
		placed := false
		for tries := 0; tries < len(p.candidates); tries++ {
			date := p.candidates[(next+tries)%len(p.candidates)]
			if p.hasRoom(date) {
				res.Placed = append(res.Placed, p.place(sess, date))
				next = (next + tries + 1) % len(p.candidates)
				placed = true
				break
			}
		}
		if !placed {
			res.Unplaced = append(res.Unplaced, sess)
		}
	}
}
