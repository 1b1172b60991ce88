package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	SessionKey contextKey = "session"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func SetUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID.String())
}

// GetSessionFromContext mendapatkan session token dari context
func GetSessionFromContext(ctx context.Context) (string, bool) {
	sessionVal := ctx.Value(SessionKey)
	if sessionVal == nil {
		return "", false
	}

	session, ok := sessionVal.(string)
	return session, ok
}

// SetSessionContext menambahkan session token ke context
func SetSessionContext(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}
