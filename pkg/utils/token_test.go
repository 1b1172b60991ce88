package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessToken(t *testing.T) {
	userID, session := uuid.New(), uuid.New()
	tok, err := GenerateAccessToken("s3cret", userID, session, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	gotUser, gotSession, err := ParseAccessToken("s3cret", tok)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if gotUser != userID || gotSession != session.String() {
		t.Fatalf("got %s/%s, want %s/%s", gotUser, gotSession, userID, session)
	}

	if _, _, err := ParseAccessToken("other", tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: expected ErrInvalidToken, got %v", err)
	}
}

func TestGenerateAccessToken_RequiresSecret(t *testing.T) {
	if _, err := GenerateAccessToken("", uuid.New(), uuid.New(), time.Now().Add(time.Hour)); err == nil {
		t.Fatal("expected error without secret")
	}
}
