package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ocupalli/occupational-health/internal/api/metrics"
	"github.com/ocupalli/occupational-health/internal/api/middleware"
	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const msgLogoutDone = "Logout realizado com sucesso"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a signed access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse{data=loginResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_payload").Inc()
		return domain.NewValidationError(msgInvalidPayload)
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return ok(c, http.StatusOK, loginResponse{User: res.User, Token: res.Token})
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=domain.User}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.Me(c.Request().Context(), middleware.ClaimsFrom(c))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, user)
}

// Logout ends the session. When revocation is enabled the presented token
// stops being accepted immediately.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.ClaimsFrom(c)); err != nil {
		return err
	}
	return okMessage(c, msgLogoutDone, nil)
}

func loginOutcome(err error) string {
	de, ok := domain.AsError(err)
	if !ok {
		return "error"
	}
	switch de.Code() {
	case domain.CodeValidation:
		return "invalid_payload"
	case domain.CodeUnauthorized:
		return "invalid_credentials"
	default:
		return "error"
	}
}
