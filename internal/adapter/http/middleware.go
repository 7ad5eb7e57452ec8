package adapthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"msgboard/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// sessionCookie is the cookie carrying the session id.
const sessionCookie = "sessionId"

// sessionMiddleware resolves the session cookie to an identity and
// attaches it to the request context. Requests with no or an unknown
// session simply proceed anonymously; handlers that require auth check
// for themselves.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			user, err := s.auth.Identify(r.Context(), cookie.Value)
			if err != nil {
				s.log.Error("session lookup failed", "error", err)
			} else if user != nil {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// userFrom returns the authenticated user attached to the request, or nil.
func userFrom(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey).(*domain.User)
	return u
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Info("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
