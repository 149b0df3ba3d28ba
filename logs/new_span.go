package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan opens a span for one session. An empty parent inherits the span found in ctx.
type NewSpan func(ctx context.Context, what string, parent Span) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, what string, parent Span) (context.Context, Span) {

		// creator
		creatorSpan := SpanFrom(ctx)
		if parent == "" {
			parent = creatorSpan
		}

		// span
		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		// logs
		args := []any{"what", what}
		if creatorSpan != "" && creatorSpan != parent {
			args = append(args, "creator", creatorSpan)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.InfoContext(ctx, "new span", args...)

		return ctx, span
	}
}
