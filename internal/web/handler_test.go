package web

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-dashboard-backend/config"
	"rental-dashboard-backend/internal/backend"
	"rental-dashboard-backend/internal/session"
	"rental-dashboard-backend/internal/store"
)

func newTestRouter(t *testing.T, backendURL string) (*gin.Engine, *session.Store) {
	dir := t.TempDir()
	sessions := session.NewStore(
		filepath.Join(dir, "session.json"),
		filepath.Join(dir, "session.local.json"),
		session.DefaultTTL,
	)

	client := backend.NewClient(backendURL, 5*time.Second, 1000, 1000, sessions)
	handler := NewHandler(
		sessions,
		backend.NewAuthAPI(client),
		backend.NewWhatsAppAPI(client),
		store.NewAdminStore(backend.NewAdminAPI(client)),
		store.NewJenisMotorStore(backend.NewJenisMotorAPI(client)),
		store.NewUnitMotorStore(backend.NewUnitMotorAPI(client)),
		store.NewTransaksiStore(backend.NewTransaksiAPI(client)),
		store.NewBlogStore(backend.NewBlogAPI(client)),
		store.NewWhatsAppStore(backend.NewWhatsAppAPI(client), 0, 0),
		nil,
		nil,
	)

	cfg := config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTLSeconds: 1}
	return NewRouter(cfg, handler), sessions
}

func TestRequireAuthBlocksWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t, "http://backend.invalid")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/unit-motor", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}

func TestLoginPersistsSession(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"access_token":"tok-1","admin":{"id":"a1","username":"budi","nama":"Budi"}}`))
	}))
	defer backendSrv.Close()

	router, sessions := newTestRouter(t, backendSrv.URL)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"username":"budi","password":"rahasia"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"budi"`)
	assert.True(t, sessions.IsAuthenticated())

	// With a session the guard lets /me through.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/auth/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t, "http://backend.invalid")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"budi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	router, sessions := newTestRouter(t, "http://backend.invalid")
	require.NoError(t, sessions.SetSession("tok-1", &backend.Admin{ID: "a1", Username: "budi"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, sessions.IsAuthenticated())
}

func TestPutSubscriptionWithoutDatabase(t *testing.T) {
	router, sessions := newTestRouter(t, "http://backend.invalid")
	require.NoError(t, sessions.SetSession("tok-1", &backend.Admin{ID: "a1", Username: "budi"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/subscriptions",
		strings.NewReader(`{"endpoint":"https://example.com/push","p256dh":"k","auth":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
