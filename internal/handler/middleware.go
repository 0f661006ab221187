package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/auth"
	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// Authenticate проверяет токен сессии из заголовка Authorization (Bearer)
// или из cookie и кладет пользователя в контекст запроса.
func Authenticate(tokens auth.TokenService, cookieName string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r, cookieName)
			if raw == "" {
				respondWithDomainError(w, r, domain.NewUnauthenticated("User Not Authorized"), logger)
				return
			}

			p, err := tokens.Verify(raw)
			if err != nil {
				logger.Warn("rejected session token", "path", r.URL.Path, "error", err)
				respondWithDomainError(w, r, domain.NewUnauthenticated("User Not Authorized"), logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// principal достает пользователя, положенного Authenticate.
func principal(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (domain.Principal, bool) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respondWithDomainError(w, r, domain.NewUnauthenticated("User Not Authorized"), logger)
	}
	return p, ok
}
