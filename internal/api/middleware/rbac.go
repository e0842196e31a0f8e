package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ocupalli/occupational-health/internal/core/domain"
)

const (
	msgNotAuthenticated = "Não autenticado"
	msgForbidden        = "Sem permissão para acessar este recurso"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return domain.NewUnauthorizedError(msgNotAuthenticated, nil)
			}
			if _, ok := allowed[claims.Role]; !ok {
				return domain.NewForbiddenError(msgForbidden)
			}
			return next(c)
		}
	}
}
