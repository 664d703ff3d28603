package contextutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/auth"
)

type contextKey string

const TraceIDKey contextKey = "traceID"
const SessionKey contextKey = "session"

func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return "unknown-trace-id"
	}
	return traceID
}

func WithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// SessionFromContext returns nil for a logged-out request.
func SessionFromContext(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(SessionKey).(*auth.Session)
	return session
}
