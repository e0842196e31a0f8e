package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/core/domain"
)

type stubValidator struct {
	validateFn func(ctx context.Context, token string) (*domain.Claims, error)
}

func (s *stubValidator) Validate(ctx context.Context, token string) (*domain.Claims, error) {
	return s.validateFn(ctx, token)
}

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func unreachable(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	c, rec := newAuthContext("Bearer good-token")
	v := &stubValidator{validateFn: func(_ context.Context, token string) (*domain.Claims, error) {
		if token != "good-token" {
			t.Fatalf("unexpected token %q", token)
		}
		return &domain.Claims{UserID: "u1", Username: "alice", Role: domain.RoleAdmin, TokenID: "jti"}, nil
	}}

	called := false
	handler := Auth(v, zerolog.Nop())(func(c echo.Context) error {
		called = true
		claims := ClaimsFrom(c)
		if claims == nil || claims.Username != "alice" || claims.Role != domain.RoleAdmin {
			t.Fatalf("claims not set: %+v", claims)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	v := &stubValidator{validateFn: func(context.Context, string) (*domain.Claims, error) {
		t.Fatalf("validator should not be called")
		return nil, nil
	}}

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer   ", "bearer abc"} {
		c, _ := newAuthContext(header)
		err := Auth(v, zerolog.Nop())(unreachable(t))(c)

		var ue *domain.UnauthorizedError
		if !errors.As(err, &ue) {
			t.Fatalf("header %q: expected UnauthorizedError, got %v", header, err)
		}
		if ue.Message != msgMissingToken {
			t.Fatalf("header %q: unexpected message %q", header, ue.Message)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	for _, cause := range []error{
		domain.ErrTokenExpired,
		domain.ErrTokenSignatureInvalid,
		domain.ErrTokenMalformed,
		domain.ErrTokenRevoked,
	} {
		c, _ := newAuthContext("Bearer bad")
		v := &stubValidator{validateFn: func(context.Context, string) (*domain.Claims, error) {
			return nil, fmt.Errorf("%w: detail", cause)
		}}

		err := Auth(v, zerolog.Nop())(unreachable(t))(c)

		var ue *domain.UnauthorizedError
		if !errors.As(err, &ue) {
			t.Fatalf("%v: expected UnauthorizedError, got %v", cause, err)
		}
		if ue.Message != msgInvalidToken {
			t.Fatalf("%v: unexpected message %q", cause, ue.Message)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("%v: cause not preserved", cause)
		}
	}
}

func TestAuthMiddleware_StoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("redis: connection refused")
	c, _ := newAuthContext("Bearer any")
	v := &stubValidator{validateFn: func(context.Context, string) (*domain.Claims, error) {
		return nil, storeErr
	}}

	err := Auth(v, zerolog.Nop())(unreachable(t))(c)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, ok := domain.AsError(err); ok {
		t.Fatalf("store failure must not be reported as a domain error")
	}
}
