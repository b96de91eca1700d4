package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("user_1", "customer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Role != "customer" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)

	token, err := svc.Issue("user_1", "admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 24*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", ttl)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)

	token, err := svc.Issue("user_1", "customer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.Verify(token); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("user_1", "customer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, err := svc.Verify(tampered); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	other := NewTokenService("other-secret", time.Hour)
	token, err := other.Issue("user_1", "customer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify(token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_WrongAlgorithm(t *testing.T) {
	// A token signed with "none" must never pass, even with a valid shape.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "user_1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify(token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
