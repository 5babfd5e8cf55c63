package util

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret", time.Minute, time.Hour)

	userID := uuid.New()
	token, expiresAt, err := manager.Generate(userID, "tester", "sess-1", TokenAccess)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token, TokenAccess)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Username != "tester" {
		t.Fatalf("expected username claim tester, got %q", claims.Username)
	}
	if claims.SessionID != "sess-1" {
		t.Fatalf("expected session id sess-1, got %q", claims.SessionID)
	}
}

func TestJWTManagerRejectsWrongType(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute, time.Hour)
	refresh, _, err := manager.Generate(uuid.New(), "tester", "sess", TokenRefresh)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := manager.Parse(refresh, TokenAccess); !errors.Is(err, ErrTokenWrongType) {
		t.Fatalf("expected ErrTokenWrongType, got %v", err)
	}
	if _, err := manager.Parse(refresh, TokenRefresh); err != nil {
		t.Fatalf("expected refresh token to parse, got %v", err)
	}
}

func TestJWTManagerRefreshUsesLongerTTL(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute, 24*time.Hour)
	_, accessExp, _ := manager.Generate(uuid.New(), "u", "s", TokenAccess)
	_, refreshExp, _ := manager.Generate(uuid.New(), "u", "s", TokenRefresh)
	if !refreshExp.After(accessExp) {
		t.Fatalf("expected refresh expiry %v after access expiry %v", refreshExp, accessExp)
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute, time.Hour)
	token, _, err := manager.Generate(uuid.New(), "tester", "sess", TokenAccess)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	manager.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := manager.Parse(token, TokenAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("one", time.Minute, time.Hour)
	verifier := NewJWTManager("two", time.Minute, time.Hour)
	token, _, _ := issuer.Generate(uuid.New(), "tester", "sess", TokenAccess)
	if _, err := verifier.Parse(token, TokenAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
