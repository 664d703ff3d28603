package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patilpriyadarshini/migration-repo-sub001/internal/auth"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "unknown-trace-id", TraceIDFromContext(ctx))

	require.Equal(t, "abc", TraceIDFromContext(WithTraceID(ctx, "abc")))
	require.Len(t, TraceIDFromContext(WithTraceID(ctx, "")), 36)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, SessionFromContext(ctx))

	session := &auth.Session{UserID: "ADMIN001", Role: auth.RoleAdmin}
	require.Same(t, session, SessionFromContext(WithSession(ctx, session)))
}
