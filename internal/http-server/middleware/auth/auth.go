// Package auth authenticates requests carrying an "Authorization: Bearer" token
// and stores the resulting principal in the request context.
package auth

import (
	"context"
	"eventsApi/internal/access"
	"eventsApi/internal/lib/api/response"
	"eventsApi/internal/lib/logger/sl"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strings"
)

type ctxKey struct{}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenParser
type TokenParser interface {
	Parse(raw string) (access.Principal, error)
}

func WithPrincipal(ctx context.Context, p access.Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the authenticated caller, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *access.Principal {
	p, ok := ctx.Value(ctxKey{}).(access.Principal)
	if !ok {
		return nil
	}

	return &p
}

// Required rejects requests without a valid bearer token.
func Required(log *slog.Logger, parser TokenParser) func(next http.Handler) http.Handler {
	return newMiddleware(log, parser, true)
}

// Optional lets anonymous requests through but still rejects an invalid token.
func Optional(log *slog.Logger, parser TokenParser) func(next http.Handler) http.Handler {
	return newMiddleware(log, parser, false)
}

func newMiddleware(log *slog.Logger, parser TokenParser, required bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/auth"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if required {
					log.Info("missing authorization header", slog.String("path", r.URL.Path))
					unauthorized(w, r, "missing authorization header")
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				log.Info("malformed authorization header")
				unauthorized(w, r, "malformed authorization header")
				return
			}

			principal, err := parser.Parse(strings.TrimSpace(raw))
			if err != nil {
				log.Info("invalid token", sl.Err(err))
				unauthorized(w, r, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		}

		return http.HandlerFunc(fn)
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="events-api"`)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(msg))
}
