package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/plancast/plancast-backend/internal/domain"
)

// stubValidator returns a fixed token or error
type stubValidator struct {
	token *domain.APIToken
	err   error
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (*domain.APIToken, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}

func runAuth(t *testing.T, validator APITokenValidator, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := NewAPITokenAuthMiddleware(validator)
	handler := mw.Authenticate()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return rec, c, called
}

func TestAuthenticate_Success(t *testing.T) {
	token := &domain.APIToken{ID: uuid.New(), WorkspaceID: 42}
	rec, c, called := runAuth(t, &stubValidator{token: token}, "Bearer plc_abc123")

	if !called {
		t.Fatal("Expected next handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if got := GetWorkspaceID(c); got != 42 {
		t.Errorf("Expected workspace 42, got %d", got)
	}
	if got := GetAPITokenID(c); got != token.ID {
		t.Errorf("Expected token ID %s, got %s", token.ID, got)
	}
	if !IsAPITokenAuth(c) {
		t.Error("Expected IsAPITokenAuth true")
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rec, _, called := runAuth(t, &stubValidator{}, "")
	if called {
		t.Error("Next handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_BadScheme(t *testing.T) {
	rec, _, called := runAuth(t, &stubValidator{}, "Basic plc_abc123")
	if called {
		t.Error("Next handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_WrongPrefix(t *testing.T) {
	rec, _, called := runAuth(t, &stubValidator{}, "Bearer sk_live_whatever")
	if called {
		t.Error("Next handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	rec, _, called := runAuth(t, &stubValidator{err: domain.ErrAPITokenNotFound}, "Bearer plc_unknown")
	if called {
		t.Error("Next handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
