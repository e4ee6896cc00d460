package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type tokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type AuthMiddlewareHandler struct {
	verifier     tokenVerifier
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(verifier tokenVerifier) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		verifier: verifier,
		allowedPaths: map[string]bool{
			// public, no auth needed:
			"/ping":              true,
			"/exercises/popular": true,
			"/exercises/get-all": true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "authorization token missing", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := h.verifier.Verify(ctx, token)
			if err != nil {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(ctx, userID)))
		})
	}
}
