package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecovererConfig configures the panic boundary.
type RecovererConfig struct {
	// ExposeErrors puts the panic text in the response message.
	// Enable only in development.
	ExposeErrors bool
}

// Recoverer turns a panic anywhere below it into a logged 500 JSON response.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(logger *slog.Logger, cfg RecovererConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				message := "Something went wrong"
				if cfg.ExposeErrors {
					message = fmt.Sprint(rvr)
				}
				writeError(w, http.StatusInternalServerError, "Internal Server Error", message)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
