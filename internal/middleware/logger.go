package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/jamesedwarddillard-zz/blogful/internal/logging"
	"github.com/jamesedwarddillard-zz/blogful/internal/metrics"
)

// statusRecorder captures the status and body size written downstream
// so the wide event can report them.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.wroteHeader {
		return
	}
	sr.status = code
	sr.wroteHeader = true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.wroteHeader {
		sr.WriteHeader(http.StatusOK)
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.size += n
	return n, err
}

// Logger emits one wide event per request. It must sit inside the
// session middleware so the authenticated principal, when there is one,
// lands in the event alongside whatever handlers add.
func Logger(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx, event := logging.NewEventContext(r.Context())

			event.Add(
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
			)
			if userID := sm.GetInt64(ctx, "user_id"); userID != 0 {
				event.Add(slog.Int64("session_user_id", userID))
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(ctx))

			event.Add(
				slog.Int("status", rec.status),
				slog.Int("size", rec.size),
				slog.Float64("duration_ms", float64(time.Since(start).Nanoseconds())/1e6),
			)

			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.status)).Inc()

			level := slog.LevelInfo
			if rec.status >= 500 {
				level = slog.LevelError
			}

			logging.Get().Log(ctx, level, "request completed", event.Attrs()...)
		})
	}
}
