package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/finance-be/internal/auth"
	"github.com/hongminglow/finance-be/internal/http/respond"
	"github.com/hongminglow/finance-be/internal/models"
	"github.com/hongminglow/finance-be/internal/storage/memory"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type authFixture struct {
	tokens *auth.TokenManager
	gate   *auth.Gate
	errs   *respond.Dispatcher
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	store := memory.NewStore()
	for _, e := range []models.Employee{
		{Username: "alice", HashedPassword: "h", ACL: models.RoleStaff, Active: true},
		{Username: "root", HashedPassword: "h", ACL: models.RoleAdmin, Active: true},
		{Username: "bob", HashedPassword: "h", ACL: models.RoleStaff, Active: false},
	} {
		_, err := store.CreateEmployee(context.Background(), e)
		require.NoError(t, err)
	}
	tokens, err := auth.NewTokenManager("test-secret-key", "HS256", "finance-test", 15*time.Minute)
	require.NoError(t, err)
	return authFixture{
		tokens: tokens,
		gate:   auth.NewGate(tokens, store),
		errs:   respond.NewDispatcher(setupTestLogger()),
	}
}

func (f authFixture) token(t *testing.T, username string) string {
	t.Helper()
	token, _, err := f.tokens.Generate(username)
	require.NoError(t, err)
	return token
}

func principalEcho(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFromContext(r.Context())
		require.True(t, ok, "principal should be in context")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(p.Username))
	}
}

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthorize_Success(t *testing.T) {
	f := newAuthFixture(t)
	h := Authorize(f.gate, f.errs, auth.RequireActive)(principalEcho(t))

	w := serve(h, "Bearer "+f.token(t, "alice"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestAuthorize_StaffOnAdminEndpointIsForbidden(t *testing.T) {
	f := newAuthFixture(t)
	admin := Authorize(f.gate, f.errs, auth.RequireAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be called")
	}))
	active := Authorize(f.gate, f.errs, auth.RequireActive)(principalEcho(t))
	token := "Bearer " + f.token(t, "alice")

	w := serve(admin, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, map[string]any{"message": "权限不足", "type": "business_error"}, decodeBody(t, w))

	w = serve(active, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorize_UnknownUserLooksLikeTamperedToken(t *testing.T) {
	f := newAuthFixture(t)
	h := Authorize(f.gate, f.errs, auth.RequireActive)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be called")
	}))

	foreign, err := auth.NewTokenManager("attacker-secret", "HS256", "finance-test", time.Minute)
	require.NoError(t, err)
	forged, _, err := foreign.Generate("root")
	require.NoError(t, err)

	ghost := serve(h, "Bearer "+f.token(t, "ghost"))
	tampered := serve(h, "Bearer "+forged)

	assert.Equal(t, http.StatusUnauthorized, ghost.Code)
	assert.Equal(t, ghost.Code, tampered.Code)
	assert.Equal(t, ghost.Body.String(), tampered.Body.String())
	assert.Equal(t, "Bearer", ghost.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "business_error", decodeBody(t, ghost)["type"])
}

func TestAuthorize_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	token := "Bearer " + f.token(t, "bob")

	w := serve(Authorize(f.gate, f.errs, auth.RequireActive)(principalEcho(t)), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"message": "用户未激活", "type": "business_error"}, decodeBody(t, w))

	w = serve(Authorize(f.gate, f.errs, auth.RequireAuthenticated)(principalEcho(t)), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", w.Body.String())
}

func TestAuthorize_BadHeaders(t *testing.T) {
	f := newAuthFixture(t)
	h := Authorize(f.gate, f.errs, auth.RequireAuthenticated)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be called")
	}))
	valid := f.token(t, "alice")

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "basic scheme", header: "Basic " + valid},
		{name: "no token", header: "Bearer "},
		{name: "no scheme", header: valid},
		{name: "garbage", header: "Bearer garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, map[string]any{"message": "无法验证凭据", "type": "business_error"}, decodeBody(t, w))
		})
	}
}

func TestAuthorize_LowercaseScheme(t *testing.T) {
	f := newAuthFixture(t)
	h := Authorize(f.gate, f.errs, auth.RequireAdmin)(principalEcho(t))

	w := serve(h, "bearer "+f.token(t, "root"))
	assert.Equal(t, http.StatusOK, w.Code)
}
