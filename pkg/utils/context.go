package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
)

func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	sessionVal := ctx.Value(SessionIDKey)
	if sessionVal == nil {
		return uuid.Nil, false
	}

	sessionStr, ok := sessionVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(sessionStr)
	if err != nil {
		return uuid.Nil, false
	}

	return sessionID, true
}

func SetSessionContext(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID.String())
}
