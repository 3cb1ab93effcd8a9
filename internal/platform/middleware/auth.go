package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/d4rken/cwa-app-android/internal/platform/apitoken"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/httputil"
	"github.com/d4rken/cwa-app-android/pkg/requestcontext"
)

// TokenValidator checks a bearer token.
type TokenValidator interface {
	Validate(raw string) (*apitoken.Claims, error)
}

type contextKeySubject struct{}

// Subject returns the token subject of an authenticated request.
func Subject(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeySubject{}).(string); ok {
		return s
	}
	return ""
}

// RequireToken rejects requests without a valid bearer token. Safe methods
// pass through so the state can be inspected without one.
func RequireToken(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				logger.WarnContext(ctx, "unauthorized trigger - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}
			claims, err := validator.Validate(raw)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized trigger - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}
			ctx = context.WithValue(ctx, contextKeySubject{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
