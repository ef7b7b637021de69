package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/auth"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	valid string
}

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken != f.valid {
		return nil, errors.New("token expired")
	}
	return &auth.Token{Subject: "abcdefg"}, nil
}

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/streak/check", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func subjectHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := ForContext(r.Context()); token != nil {
			io.WriteString(w, token.Subject)
		}
	})
}

func TestMiddlewareStoresVerifiedToken(t *testing.T) {
	h := Middleware(fakeVerifier{valid: "good"}, slog.Default())(subjectHandler())

	rec := serve(h, "Bearer good")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abcdefg", rec.Body.String())
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	h := Middleware(fakeVerifier{valid: "good"}, slog.New(slog.NewTextHandler(io.Discard, nil)))(subjectHandler())

	rec := serve(h, "Bearer bad")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddlewarePassesAnonymousRequests(t *testing.T) {
	h := Middleware(fakeVerifier{valid: "good"}, slog.Default())(subjectHandler())

	rec := serve(h, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequire(t *testing.T) {
	h := Middleware(fakeVerifier{valid: "good"}, slog.Default())(Require(subjectHandler()))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Basic abc").Code)
	assert.Equal(t, http.StatusOK, serve(h, "Bearer good").Code)
}

func TestForContextWithoutToken(t *testing.T) {
	assert.Nil(t, ForContext(context.Background()))
}
