package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainerror "github.com/finwise/backend/internal/domain/error"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	service := NewTokenService("test-secret")
	userID := uuid.New()

	token, err := service.GenerateAccessToken(context.Background(), userID, "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	claims, err := service.ValidateAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Email = %q, want ana@example.com", claims.Email)
	}
	if claims.ExpiresAt.IsZero() {
		t.Error("ExpiresAt should be set")
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.GenerateAccessToken(context.Background(), uuid.New(), "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = verifier.ValidateAccessToken(context.Background(), token)
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	service := NewTokenService("test-secret")

	_, err := service.ValidateAccessToken(context.Background(), "not.a.token")
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
