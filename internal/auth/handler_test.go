package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/skill-assessment-api/internal/httputil"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

func doJSON(h http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandler_SignupAndLogin(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	limiter := &stubLimiter{allowed: true}
	h := NewHandler(svc, limiter)

	rec := doJSON(h.Signup, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","phone":"","password":"p1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var signup SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	assert.Equal(t, "details", string(signup.Stage))
	assert.NotEmpty(t, signup.Token)

	rec = doJSON(h.Login, http.MethodPost, "/login", `{"email":"a@x.com","password":"p1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, "details", login["stage"])
	assert.Equal(t, false, login["detailsCompleted"])
	assert.Equal(t, "details", login["redirect"])
	assert.NotEmpty(t, login["token"])

	require.Len(t, limiter.keys, 2)
	assert.True(t, strings.HasPrefix(limiter.keys[0], "signup:"))
	assert.True(t, strings.HasPrefix(limiter.keys[1], "login:"))
}

func TestHandler_SignupErrors(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	h := NewHandler(svc, nil)

	rec := doJSON(h.Signup, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"p1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"duplicate email", `{"name":"B","email":"A@x.com","password":"zz"}`, http.StatusConflict, httputil.CodeConflict},
		{"missing password", `{"name":"B","email":"b@x.com"}`, http.StatusBadRequest, httputil.CodeBadRequest},
		{"malformed body", `{"name":`, http.StatusBadRequest, httputil.CodeBadRequest},
		{"oversized body", `{"name":"` + strings.Repeat("a", httputil.MaxJSONBodySize) + `","email":"c@x.com","password":"p1"}`,
			http.StatusBadRequest, httputil.CodeBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(h.Signup, http.MethodPost, "/signup", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Code)
		})
	}
}

func TestHandler_LoginInvalidCredentials(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	h := NewHandler(svc, nil)

	rec := doJSON(h.Login, http.MethodPost, "/login", `{"email":"ghost@x.com","password":"p1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeInvalidCredentials, decodeError(t, rec).Code)
}

func TestHandler_RateLimited(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	h := NewHandler(svc, &stubLimiter{allowed: false})

	rec := doJSON(h.Signup, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"p1"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, httputil.CodeTooManyRequests, decodeError(t, rec).Code)

	_, err := store.GetByEmail(context.Background(), "a@x.com")
	assert.Error(t, err)
}

func TestHandler_LimiterFailureFailsOpen(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	h := NewHandler(svc, &stubLimiter{err: errors.New("redis down")})

	rec := doJSON(h.Signup, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"p1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMiddleware_RequireAuth(t *testing.T) {
	tokens, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)
	m := NewMiddleware(tokens)

	userID := uuid.New()
	valid, err := tokens.CreateToken(userID, time.Hour)
	require.NoError(t, err)

	var seen uuid.UUID
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"valid", "Bearer " + valid, http.StatusNoContent, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent, ""},
		{"missing", "", http.StatusUnauthorized, "missing authentication"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization header format"},
		{"no token", "Bearer ", http.StatusUnauthorized, "invalid authorization header format"},
		{"tampered", "Bearer " + tamper(valid), http.StatusUnauthorized, "invalid token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called = false
			seen = uuid.Nil

			req := httptest.NewRequest(http.MethodGet, "/progress", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			m.RequireAuth(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusNoContent {
				assert.True(t, called)
				assert.Equal(t, userID, seen)
				return
			}
			assert.False(t, called)
			body := decodeError(t, rec)
			assert.Equal(t, httputil.CodeUnauthorized, body.Code)
			assert.Equal(t, tc.message, body.Error)
		})
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	tokens, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)

	issued := time.Now().Add(-2 * time.Hour)
	tokens.setNow(func() time.Time { return issued })
	expired, err := tokens.CreateToken(uuid.New(), time.Hour)
	require.NoError(t, err)
	tokens.setNow(time.Now)

	req := httptest.NewRequest(http.MethodGet, "/progress", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	NewMiddleware(tokens).RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token has expired", decodeError(t, rec).Error)
}
