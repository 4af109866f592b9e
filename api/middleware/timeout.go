package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/api/responses"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

// Timeout bounds the request context. When the deadline passes before the
// handler wrote anything the client receives a 504 envelope.
func Timeout(d time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			if rec.status == 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeTimeout, ctx.Err(), "la operación excedió el tiempo de espera"))
			}
		})
	}
}
