// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tms-platform/accounts-api/internal/auth"
	"github.com/tms-platform/accounts-api/internal/core"
)

type stubVerifier struct {
	subject string
	err     error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (string, error) {
	return s.subject, s.err
}

type stubLoader struct {
	users map[string]*AuthUser
}

func (s *stubLoader) LoadAuthUser(_ context.Context, id string) (*AuthUser, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func bodyMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Message
}

func TestAuthenticatorMissingToken(t *testing.T) {
	mw := Authenticator(&stubVerifier{}, &stubLoader{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := bodyMessage(t, rec); msg != "Token is not available" {
		t.Fatalf("message = %q", msg)
	}
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	mw := Authenticator(
		&stubVerifier{err: errors.New("bad signature")},
		&stubLoader{},
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SlotUser, Value: "garbage"})
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := bodyMessage(t, rec); msg != "Token invalid or expired" {
		t.Fatalf("message = %q", msg)
	}
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	mw := Authenticator(
		&stubVerifier{err: fmt.Errorf("verify token: %w", core.ErrTokenExpired)},
		&stubLoader{},
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SlotUser, Value: "stale-token"})
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := bodyMessage(t, rec); msg != "Token invalid or expired" {
		t.Fatalf("message = %q", msg)
	}
}

func TestAuthenticatorVanishedUser(t *testing.T) {
	mw := Authenticator(
		&stubVerifier{subject: "ghost"},
		&stubLoader{users: map[string]*AuthUser{}},
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SlotAdmin, Value: "valid-token"})
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticatorAttachesUser(t *testing.T) {
	loader := &stubLoader{users: map[string]*AuthUser{
		"u1": {ID: "u1", Role: "SuperAdmin", FirstName: "Alice"},
	}}
	mw := Authenticator(&stubVerifier{subject: "u1"}, loader)

	var got *AuthUser
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetAuthUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SlotSuperAdmin, Value: "valid-token"})
	rec := httptest.NewRecorder()

	mw(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.ID != "u1" || got.Role != "SuperAdmin" {
		t.Fatalf("attached user = %+v", got)
	}
}

func TestRequireRoleWithoutAuthenticator(t *testing.T) {
	mw := RequireRole("SuperAdmin")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := bodyMessage(t, rec); msg != "Authentication failed. Please login." {
		t.Fatalf("message = %q", msg)
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	mw := RequireRole("SuperAdmin")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(
		req.Context(),
		authUserKey,
		&AuthUser{ID: "u2", Role: "Admin"},
	)
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if msg := bodyMessage(t, rec); msg != "You are not authorized to perform this action" {
		t.Fatalf("message = %q", msg)
	}
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	mw := RequireRole("SuperAdmin", "Admin", "User")

	for _, role := range []string{"SuperAdmin", "Admin", "User"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(
			req.Context(),
			authUserKey,
			&AuthUser{ID: "u3", Role: role},
		)
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

		if rec.Code != http.StatusOK {
			t.Errorf("role %s: status = %d, want 200", role, rec.Code)
		}
	}
}
