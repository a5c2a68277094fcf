package main

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillyai/enhancer/internal/config"
	"github.com/chillyai/enhancer/internal/infrastructure"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("ENHANCER_DB_NAME", "enhancer")
	t.Setenv("ENHANCER_DB_USER", "enhancer")
	t.Setenv("ENHANCER_DB_HOST", "127.0.0.1")
	t.Setenv("ENHANCER_DB_PORT", "1")
	t.Setenv("ENHANCER_DB_CONN_TIMEOUT", "500ms")
	t.Setenv("ENHANCER_MODEL_API_KEY", "sk-test")
	t.Setenv(config.EnvEnhancerEnv, "")

	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)

	infra, err := infrastructure.NewWithLogger(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	srv, err := newServer(cfg, infra)
	require.NoError(t, err)
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not ready"}`, rec.Body.String())

	srv.infra.Lifecycle.WaitForStartup()

	rec = get(srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"database unavailable"}`, rec.Body.String())
}

func TestAPIMounted(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/api/prompts")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHTTPServerStartAndShutdown(t *testing.T) {
	srv := newTestServer(t)
	srv.http.http.Addr = "127.0.0.1:0"

	require.NoError(t, srv.http.Start(srv.infra.Lifecycle))
	assert.NoError(t, srv.infra.Lifecycle.Shutdown(5*time.Second))
}

func TestHTTPServerPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := newTestServer(t)
	srv.http.http.Addr = ln.Addr().String()

	assert.Error(t, srv.http.Start(srv.infra.Lifecycle))
}
