package oracle

import "github.com/abhisek/studyplan/internal/llm"

// RedistributionSchema defines the JSON schema for session
// redistribution responses.
var RedistributionSchema = &llm.Schema{
	Name:        "session-redistribution",
	Description: "A plan assigning missed study sessions to upcoming dates",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rationale": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining the prioritization, shown to the student",
			},
			"placements": map[string]any{
				"type":        "array",
				"description": "One entry per date that receives sessions. Only use dates from the candidate list.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"date": map[string]any{
							"type":        "string",
							"description": "Target date in YYYY-MM-DD format, taken from the candidate list",
						},
						"sessions": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"subject": map[string]any{
										"type":        "string",
										"description": "Subject of the missed session, copied exactly",
									},
									"topic": map[string]any{
										"type":        "string",
										"description": "Topic of the missed session, copied exactly",
									},
									"duration_minutes": map[string]any{
										"type":        "integer",
										"minimum":     15,
										"maximum":     180,
										"description": "Adjusted session length in minutes",
									},
									"note": map[string]any{
										"type":        "string",
										"description": "Optional short tip for this session. Empty string when none.",
									},
								},
								"required":             []any{"subject", "topic", "duration_minutes", "note"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"date", "sessions"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"rationale", "placements"},
		"additionalProperties": false,
	},
}
