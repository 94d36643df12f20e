package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/auth"
)

const requestIDHeader = "X-Request-Id"

func LoggingMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
				// Handlers read the id back off the request, so a
				// generated one must land there too.
				r.Header.Set(requestIDHeader, requestID)
			}
			w.Header().Set(requestIDHeader, requestID)

			lgr.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(w, r)

			lgr.Debug("http_response", "Request completed", requestID, map[string]interface{}{
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					lgr.Error("panic_recovered", "Panic recovered", r.Header.Get(requestIDHeader), nil, fmt.Errorf("%v", err))
					respondError(w, "Internal server error", http.StatusInternalServerError, nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware requires a bearer token and stores the resulting actor on
// the request context.
func AuthMiddleware(tokens *auth.TokenManager, lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header is missing", http.StatusUnauthorized, nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				respondError(w, "Invalid token format", http.StatusUnauthorized, nil)
				return
			}

			actor, err := tokens.ParseToken(tokenString)
			if err != nil {
				lgr.Error("auth_failed", "Invalid token", r.Header.Get(requestIDHeader), nil, err)
				respondError(w, "Invalid token", http.StatusUnauthorized, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}
