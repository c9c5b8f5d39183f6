package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/PeterLoonenMetis/eduview-sub000/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "eduview-identity",
		AccessTokenTTL: 15 * time.Minute,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", RoleAdmin, "inst-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected UserID=user-1, got %s", claims.UserID)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("expected Role=admin, got %s", claims.Role)
	}
	if claims.InstituteID != "inst-1" {
		t.Errorf("expected InstituteID=inst-1, got %s", claims.InstituteID)
	}
	if claims.Issuer != "eduview-identity" {
		t.Errorf("expected Issuer=eduview-identity, got %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI must not be empty")
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "eduview-identity",
		AccessTokenTTL: -time.Minute,
	})

	token, err := m.GenerateAccessToken("user-1", RoleViewer, "")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _ := newTestManager().GenerateAccessToken("user-1", RoleEditor, "")

	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-for-testing-2026",
		Issuer:         "eduview-identity",
		AccessTokenTTL: 15 * time.Minute,
	})
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	signer := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "somebody-else",
		AccessTokenTTL: 15 * time.Minute,
	})
	token, _ := signer.GenerateAccessToken("user-1", RoleAdmin, "")

	if _, err := newTestManager().ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := newTestManager().ParseToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
