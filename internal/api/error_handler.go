package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/api/metrics"
	"github.com/ocupalli/occupational-health/internal/core/domain"
)

const msgInternal = "Erro interno do servidor"

// errorResponse is the canonical error envelope for all API errors:
// {"success": false, "error": {"code": ..., "message": ..., ...fields}}.
type errorResponse struct {
	Success bool           `json:"success"`
	Error   map[string]any `json:"error"`
}

// NewHTTPErrorHandler returns the single boundary translator. It:
//   - Maps application errors to their HTTP status and code-specific payload.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the envelope for every non-2xx response.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Translate(err)
		if status >= http.StatusInternalServerError && !errors.Is(err, errPanicRecovered) {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		} else if ue := (*domain.UnauthorizedError)(nil); errors.As(err, &ue) && ue.Cause != nil {
			log.Debug().Err(ue.Cause).Str("path", c.Path()).Msg("authentication rejected")
		}

		metrics.ErrorResponsesTotal.WithLabelValues(fmt.Sprint(body.Error["code"])).Inc()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

// Translate converts any error into an HTTP status and error envelope.
func Translate(err error) (int, errorResponse) {
	if de, ok := domain.AsError(err); ok {
		return StatusFor(de), envelope(de.Code(), de.Error(), de.Fields())
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := codeForStatus(he.Code)
		msg := fmt.Sprintf("%v", he.Message)
		if code == domain.CodeInternal {
			msg = msgInternal
		}
		return he.Code, envelope(code, msg, nil)
	}

	return http.StatusInternalServerError, envelope(domain.CodeInternal, msgInternal, nil)
}

// StatusFor maps each application error variant to its HTTP status.
func StatusFor(err domain.Error) int {
	switch err.(type) {
	case *domain.ValidationError:
		return http.StatusBadRequest
	case *domain.UnauthorizedError:
		return http.StatusUnauthorized
	case *domain.ForbiddenError:
		return http.StatusForbidden
	case *domain.NotFoundError:
		return http.StatusNotFound
	case *domain.CannotDeleteDependencyError:
		return http.StatusBadRequest
	case *domain.DuplicateFieldError:
		return http.StatusConflict
	case *domain.InvalidRelationshipError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeForStatus(status int) domain.Code {
	switch {
	case status == http.StatusUnauthorized:
		return domain.CodeUnauthorized
	case status == http.StatusForbidden:
		return domain.CodeForbidden
	case status == http.StatusNotFound, status == http.StatusMethodNotAllowed:
		return domain.CodeNotFound
	case status >= http.StatusInternalServerError:
		return domain.CodeInternal
	default:
		return domain.CodeValidation
	}
}

func envelope(code domain.Code, message string, fields map[string]any) errorResponse {
	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["code"] = code
	body["message"] = message
	return errorResponse{Success: false, Error: body}
}
