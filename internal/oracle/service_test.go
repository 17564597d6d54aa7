package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/timetable"
)

func sampleRequest() timetable.OracleRequest {
	return timetable.OracleRequest{
		AsOf: "2025-03-10",
		Incomplete: []timetable.Session{
			{ID: "s1", Subject: "Math", Topic: "Algebra", Date: "2025-03-08", DurationMinutes: 60},
			{ID: "s2", Subject: "Physics", Topic: "Optics", Date: "2025-03-09", DurationMinutes: 45},
		},
		CandidateDates: []string{"2025-03-11", "2025-03-12"},
		LoadPerDate:    map[string]int{"2025-03-11": 2, "2025-03-12": 0},
	}
}

func TestPropose_ParsesPlacements(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"rationale": "Physics test is sooner, schedule it first.",
			"placements": [
				{"date": "2025-03-11", "sessions": [
					{"subject": "Physics", "topic": "Optics", "duration_minutes": 45, "note": ""}
				]},
				{"date": "2025-03-12", "sessions": [
					{"subject": "Math", "topic": "Algebra", "duration_minutes": 60, "note": "focus on factoring"}
				]}
			]
		}`),
	})
	svc := NewService(mock, DefaultConfig())

	resp, err := svc.Propose(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Rationale)
	require.Len(t, resp.Placements["2025-03-11"], 1)
	require.Len(t, resp.Placements["2025-03-12"], 1)

	got := resp.Placements["2025-03-12"][0]
	assert.Equal(t, "Math", got.Subject)
	assert.Equal(t, "Algebra", got.Topic)
	assert.Equal(t, "focus on factoring", got.Note)
}

func TestPropose_ClampsDurations(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"rationale": "r",
			"placements": [
				{"date": "2025-03-11", "sessions": [
					{"subject": "Math", "topic": "Algebra", "duration_minutes": 5, "note": ""},
					{"subject": "Physics", "topic": "Optics", "duration_minutes": 600, "note": ""}
				]}
			]
		}`),
	})
	svc := NewService(mock, DefaultConfig())

	resp, err := svc.Propose(context.Background(), sampleRequest())
	require.NoError(t, err)

	placements := resp.Placements["2025-03-11"]
	require.Len(t, placements, 2)
	assert.Equal(t, 15, placements[0].DurationMinutes)
	assert.Equal(t, 180, placements[1].DurationMinutes)
}

func TestPropose_DropsUnusableEntries(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"rationale": "r",
			"placements": [
				{"date": "", "sessions": [
					{"subject": "Math", "topic": "Algebra", "duration_minutes": 60, "note": ""}
				]},
				{"date": "2025-03-11", "sessions": [
					{"subject": "", "topic": "Algebra", "duration_minutes": 60, "note": ""},
					{"subject": "Physics", "topic": "Optics", "duration_minutes": 45, "note": ""}
				]}
			]
		}`),
	})
	svc := NewService(mock, DefaultConfig())

	resp, err := svc.Propose(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.Len(t, resp.Placements, 1)
	assert.Len(t, resp.Placements["2025-03-11"], 1)
}

func TestPropose_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Propose(context.Background(), sampleRequest())
	var unavail *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestPropose_RequestCarriesSchemaAndContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"rationale":"r","placements":[]}`),
	})
	svc := NewService(mock, DefaultConfig())

	req := sampleRequest()
	req.Reflection = "was sick on the weekend"
	_, err := svc.Propose(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	require.NotNil(t, call.Schema)
	assert.Equal(t, "session-redistribution", call.Schema.Name)

	msg := call.Messages[0].Content
	assert.Contains(t, msg, "2025-03-10")
	assert.Contains(t, msg, "Math / Algebra")
	assert.Contains(t, msg, "2025-03-12: 0 existing")
	assert.Contains(t, msg, "was sick on the weekend")
}
