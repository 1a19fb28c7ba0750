package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

type ctxKey struct{}

// StaffID returns the authenticated staff id stored by Middleware.
func StaffID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}

// Middleware rejects requests without a valid bearer token.
func Middleware(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httpx.Error(w, apperr.Unauthorized("missing bearer token"))
				return
			}
			id, err := svc.Verify(token)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		})
	}
}
