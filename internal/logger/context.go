package logger

import "context"

type contextKey struct{}

// LogContext carries request-scoped fields attached to every log line
// emitted through the Ctx variants.
type LogContext struct {
	RequestID string
	Subject   string
}

// WithContext returns a context carrying the given log fields.
func WithContext(ctx context.Context, lc LogContext) context.Context {
	return context.WithValue(ctx, contextKey{}, lc)
}

// FromContext extracts the log fields from ctx, if any.
func FromContext(ctx context.Context) (LogContext, bool) {
	lc, ok := ctx.Value(contextKey{}).(LogContext)
	return lc, ok
}

// appendContextFields prepends request-scoped fields to args so they
// appear first in the output line.
func appendContextFields(ctx context.Context, args []any) []any {
	lc, ok := FromContext(ctx)
	if !ok {
		return args
	}
	fields := make([]any, 0, len(args)+4)
	if lc.RequestID != "" {
		fields = append(fields, "request_id", lc.RequestID)
	}
	if lc.Subject != "" {
		fields = append(fields, "subject", lc.Subject)
	}
	return append(fields, args...)
}
