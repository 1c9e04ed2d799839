// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tms-platform/accounts-api/internal/config"
	"github.com/tms-platform/accounts-api/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:       "test-secret-key-0123456789abcdef0123",
		TokenExpire:  time.Hour,
		CookieExpire: 24 * time.Hour,
		Issuer:       "accounts-api",
		Audience:     "tms-platform",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := tm.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	subject, err := tm.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != "user-123" {
		t.Fatalf("subject = %q, want user-123", subject)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tm, err := NewTokenManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := tm.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"

	if _, err := tm.Verify(context.Background(), tampered); err == nil {
		t.Fatal("expected tampered token to fail verification")
	} else if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm, err := NewTokenManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	if _, err := tm.Verify(context.Background(), "not.a.token"); err == nil {
		t.Fatal("expected garbage token to fail verification")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.TokenExpire = -time.Minute

	tm, err := NewTokenManager(cfg)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := tm.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = tm.Verify(context.Background(), token)
	if err == nil {
		t.Fatal("expected expired token to fail verification")
	}
	if !errors.Is(err, core.ErrTokenExpired) && !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("err = %v, want a token sentinel", err)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	tm1, err := NewTokenManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	otherCfg := testJWTConfig()
	otherCfg.Secret = "another-secret-key-0123456789abcdef"
	tm2, err := NewTokenManager(otherCfg)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := tm1.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := tm2.Verify(context.Background(), token); err == nil {
		t.Fatal("expected token signed with a different key to fail")
	}
}
