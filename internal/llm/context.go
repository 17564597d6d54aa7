package llm

import "context"

type purposeKey struct{}

// WithPurpose tags the context with a short label describing why the
// model is being called ("redistribute", "timetable"). The logging
// middleware attaches it to every log line for the request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the purpose label, or "" when unset.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return ""
}
