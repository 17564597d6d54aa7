package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider is a decorator that logs every model call with timing
// and token usage.
type LoggingProvider struct {
	inner  Provider
	logger *zap.SugaredLogger
}

// WithLogging wraps a Provider with structured request logging. A nil
// logger disables logging without changing behavior.
func WithLogging(p Provider, logger *zap.SugaredLogger) Provider {
	if logger == nil {
		return p
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	schemaName := ""
	if req.Schema != nil {
		schemaName = req.Schema.Name
	}

	fields := []any{
		"model", l.inner.ModelID(),
		"schema", schemaName,
		"max_tokens", req.MaxTokens,
	}
	if purpose := PurposeFrom(ctx); purpose != "" {
		fields = append(fields, "purpose", purpose)
	}

	l.logger.Debugw("model request", fields...)

	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		l.logger.Warnw("model request failed",
			append(fields, "elapsed", elapsed, "error", err)...)
		return nil, err
	}

	l.logger.Infow("model response",
		append(fields,
			"elapsed", elapsed,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
			"stop_reason", resp.StopReason,
		)...)

	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
