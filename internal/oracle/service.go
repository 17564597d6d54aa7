// Package oracle adapts a language-model provider into the
// prioritization oracle used during session redistribution. The model
// receives the missed sessions and the upcoming load and proposes which
// dates should absorb them; the deterministic scheduler validates and
// falls back when the proposal is unusable.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/timetable"
)

// Config tunes oracle requests.
type Config struct {
	// MaxTokens caps the response length.
	MaxTokens int
	// Temperature for generation. Low values keep plans consistent.
	Temperature float64
	// Timeout bounds a single proposal end to end.
	Timeout time.Duration
	// MaxPerDay is surfaced to the model so its proposals respect the
	// scheduler's per-day insert cap.
	MaxPerDay int
}

// DefaultConfig returns the standard oracle tuning.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.2,
		Timeout:     30 * time.Second,
		MaxPerDay:   timetable.DefaultConfig().MaxInsertsPerDay,
	}
}

// Service implements timetable.Oracle over an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a redistribution oracle backed by the provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	if cfg.MaxTokens <= 0 {
		cfg = DefaultConfig()
	}
	return &Service{provider: provider, cfg: cfg}
}

// proposalOutput mirrors the response schema. Placements arrive as an
// array because structured-output APIs cannot express map keys; the
// adapter folds them into the per-date map the scheduler expects.
type proposalOutput struct {
	Rationale  string            `json:"rationale"`
	Placements []placementOutput `json:"placements"`
}

type placementOutput struct {
	Date     string          `json:"date"`
	Sessions []sessionOutput `json:"sessions"`
}

type sessionOutput struct {
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"duration_minutes"`
	Note            string `json:"note"`
}

// Propose asks the model for a redistribution plan.
func (s *Service) Propose(ctx context.Context, req timetable.OracleRequest) (*timetable.OracleResponse, error) {
	ctx = llm.WithPurpose(ctx, "redistribute")
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: redistributionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRedistributionUserMessage(req, s.cfg.MaxPerDay)},
		},
		Schema:      RedistributionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("redistribution proposal: %w", err)
	}

	var out proposalOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse redistribution proposal: %w", err)
	}

	return s.toResponse(out), nil
}

// toResponse converts the model output into the scheduler's shape,
// dropping entries that are unusable rather than failing the whole
// proposal.
func (s *Service) toResponse(out proposalOutput) *timetable.OracleResponse {
	resp := &timetable.OracleResponse{
		Rationale:  out.Rationale,
		Placements: make(map[string][]timetable.Placement, len(out.Placements)),
	}

	for _, p := range out.Placements {
		if p.Date == "" {
			continue
		}
		for _, sess := range p.Sessions {
			if sess.Subject == "" || sess.Topic == "" {
				continue
			}
			resp.Placements[p.Date] = append(resp.Placements[p.Date], timetable.Placement{
				Subject:         sess.Subject,
				Topic:           sess.Topic,
				DurationMinutes: clampDuration(sess.DurationMinutes),
				Note:            sess.Note,
			})
		}
	}

	return resp
}

// clampDuration bounds a proposed duration to [15, 180] minutes. Zero
// is preserved so the scheduler keeps the session's original length.
func clampDuration(minutes int) int {
	if minutes == 0 {
		return 0
	}
	if minutes < 15 {
		return 15
	}
	if minutes > 180 {
		return 180
	}
	return minutes
}
