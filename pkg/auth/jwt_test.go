package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "begriff-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	tokenString, err := svc.GenerateToken(userID, "user@example.com", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@example.com")
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != RoleCustomer {
		t.Errorf("Roles = %v, want [%s]", claims.Roles, RoleCustomer)
	}
	if claims.Issuer != "begriff-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "begriff-test")
	}
	if claims.Subject != "user@example.com" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user@example.com")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "begriff-test",
		Expiration: -1 * time.Hour, // already expired
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc.GenerateToken(uuid.New(), "user@example.com", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for expired token, got nil")
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1, err := NewJWTService(JWTConfig{Secret: "secret-one", Issuer: "begriff-test", Expiration: 15 * time.Minute})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	svc2, err := NewJWTService(JWTConfig{Secret: "secret-two", Issuer: "begriff-test", Expiration: 15 * time.Minute})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc1.GenerateToken(uuid.New(), "user@example.com", []string{RoleCustomer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc2.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for invalid signature, got nil")
	}
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{}); err == nil {
		t.Fatal("NewJWTService() expected error for empty config, got nil")
	}
}

func TestHasRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleAdmin}}

	if !claims.HasRole(RoleAdmin) {
		t.Error("HasRole(RoleAdmin) = false, want true")
	}
	if claims.HasRole(RoleCustomer) {
		t.Error("HasRole(RoleCustomer) = true, want false")
	}
}

func TestClaimsFromContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ClaimsFromContext(ctx); ok {
		t.Error("ClaimsFromContext() ok = true for empty context, want false")
	}

	expected := &Claims{UserID: uuid.New(), Roles: []string{RoleCustomer}}
	ctx = ContextWithClaims(ctx, expected)
	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false, want true")
	}
	if got.UserID != expected.UserID {
		t.Errorf("ClaimsFromContext().UserID = %v, want %v", got.UserID, expected.UserID)
	}
}
