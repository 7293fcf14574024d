package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"webapp-template/pkg/response"
)

func RecoverMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zerolog.Ctx(r.Context()).Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("recovered from panic")
				response.InternalError(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
