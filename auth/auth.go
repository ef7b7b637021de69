package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// A private key for context that only this package can access. This is important
// to prevent collisions between different context uses
var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// Verifier checks a Firebase ID token. *auth.Client implements it.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// NewFirebaseVerifier builds a Firebase auth client from a service-account file.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (Verifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return client, nil
}

// Middleware verifies a bearer token when one is sent and packs it into context
func Middleware(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(t) != 2 || t[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := verifier.VerifyIDToken(r.Context(), t[1])
			if err != nil {
				logger.WarnContext(r.Context(), "invalid id token", "err", err)
				http.Error(w, "Invalid token", http.StatusForbidden)
				return
			}

			// put it in context
			ctx := WithToken(r.Context(), token)

			// and call the next with our new context
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require rejects requests that Middleware did not authenticate.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ForContext(r.Context()) == nil {
			http.Error(w, "Access denied", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithToken returns a context carrying token.
func WithToken(ctx context.Context, token *auth.Token) context.Context {
	return context.WithValue(ctx, userCtxKey, token)
}

// ForContext finds the user from the context. REQUIRES Middleware to have run.
func ForContext(ctx context.Context) *auth.Token {
	raw, _ := ctx.Value(userCtxKey).(*auth.Token)
	return raw
}
