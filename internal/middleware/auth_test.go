package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tandemly/tandemly/internal/handlers"
	"github.com/tandemly/tandemly/internal/models"
)

type stubAuthService struct {
	user *models.User
	err  error
	got  string
}

func (s *stubAuthService) HashPassword(password string) (string, error) { return "", nil }
func (s *stubAuthService) VerifyPassword(hash, password string) bool    { return false }
func (s *stubAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	return "", nil
}
func (s *stubAuthService) DeleteSession(ctx context.Context, token string) error { return nil }

func (s *stubAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	s.got = token
	return s.user, s.err
}

func TestAuthenticate_NoCookiePassesThrough(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthService{})
	var seen *models.User
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handlers.GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if seen != nil {
		t.Fatalf("expected no user in context, got %+v", seen)
	}
}

func TestAuthenticate_InvalidSessionPassesThrough(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthService{err: errors.New("no session")})
	var seen *models.User
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handlers.GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "bad"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != nil {
		t.Fatalf("expected no user in context, got %+v", seen)
	}
}

func TestAuthenticate_ValidSessionSetsUser(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := &stubAuthService{user: user}
	m := NewAuthMiddleware(svc)
	var seen *models.User
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handlers.GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok123"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if svc.got != "tok123" {
		t.Fatalf("expected token tok123, got %q", svc.got)
	}
	if seen == nil || seen.ID != user.ID {
		t.Fatalf("expected user in context, got %+v", seen)
	}
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthService{})
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if ct := rr.Result().Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json error, got %q", ct)
	}
}

func TestRequireAuth_AllowsAuthenticated(t *testing.T) {
	m := NewAuthMiddleware(&stubAuthService{})
	ran := false
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(handlers.SetUserInContext(req.Context(), &models.User{ID: uuid.New()}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !ran {
		t.Fatal("expected handler to run")
	}
}
