package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/api/metrics"
	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const (
	claimsKey = "auth.claims"

	msgMissingToken = "Token não fornecido"
	msgInvalidToken = "Token inválido ou expirado"
)

// Auth validates the bearer token and injects its claims into the context.
// Token failures become UNAUTHORIZED; anything else (e.g. the revocation
// store being down) propagates as an internal error.
func Auth(validator ports.TokenValidator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.NewUnauthorizedError(msgMissingToken, nil)
			}

			claims, err := validator.Validate(c.Request().Context(), raw)
			if err != nil {
				reason := rejectionReason(err)
				if reason == "" {
					return err
				}
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Str("reason", reason).Str("path", c.Path()).Msg("token rejected")
				return domain.NewUnauthorizedError(msgInvalidToken, err)
			}

			SetClaims(c, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims injected by Auth, or nil when the request is
// unauthenticated.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}

// SetClaims stores claims on the request context.
func SetClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	default:
		return ""
	}
}
