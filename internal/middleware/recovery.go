package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jamesedwarddillard-zz/blogful/internal/logging"
	"github.com/jamesedwarddillard-zz/blogful/internal/metrics"
)

// Recovery converts a downstream panic into a 500 and records it. It is
// the outermost app middleware so nothing above it can crash the server
// goroutine.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			metrics.PanicsTotal.Inc()
			logging.Get().LogAttrs(r.Context(), slog.LevelError, "panic recovered",
				slog.Any("panic", rec),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("stack", string(debug.Stack())),
			)

			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
