package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/octiline/internal/api/apierr"
	"github.com/mcoot/octiline/internal/middleware"
)

// Recovery turns handler panics into the INTERNAL_ERROR JSON envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

// Logging logs one line per API request, or per websocket connection once it closes
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
