package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmate/trainmate-api/internal/auth"
)

type verifierStub struct {
	userID string
	err    error
}

func (v *verifierStub) Verify(_ context.Context, _ string) (string, error) {
	return v.userID, v.err
}

func TestAuthCheck_OptionsAllowed(t *testing.T) {
	h := NewAuthMiddlewareHandler(&verifierStub{err: errors.New("nope")})
	handler := h.AuthCheck()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called for OPTIONS")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/workouts", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthCheck_PublicPathAllowed(t *testing.T) {
	h := NewAuthMiddlewareHandler(&verifierStub{err: errors.New("nope")})

	nextCalled := false
	handler := h.AuthCheck()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/exercises/popular", nil)
	handler.ServeHTTP(rec, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthCheck_MissingToken(t *testing.T) {
	h := NewAuthMiddlewareHandler(&verifierStub{userID: "user123"})
	handler := h.AuthCheck()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called without a token")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/workouts", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthCheck_InvalidToken(t *testing.T) {
	h := NewAuthMiddlewareHandler(&verifierStub{err: auth.ErrInvalidToken})
	handler := h.AuthCheck()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called with an invalid token")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/workouts", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthCheck_ValidToken(t *testing.T) {
	h := NewAuthMiddlewareHandler(&verifierStub{userID: "user123"})

	var gotUserID string
	handler := h.AuthCheck()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = userID
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/workouts", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user123", gotUserID)
}
