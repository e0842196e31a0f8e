package api

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ocupalli/occupational-health/internal/api/metrics"
)

// errPanicRecovered is handed to the error handler after a panic has already
// been logged, so the client gets a plain INTERNAL_ERROR envelope.
var errPanicRecovered = errors.New("panic recovered")

// Recover isolates handler panics: the panic and stack are logged and the
// request is answered with the generic internal error envelope. Other
// requests are unaffected.
func Recover(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				metrics.PanicsRecoveredTotal.Inc()
				log.Error().
					Str("panic", fmt.Sprint(r)).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				err = errPanicRecovered
			}()
			return next(c)
		}
	}
}
