package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
	"github.com/ChurchAdmin/ChurchAdmin/internal/web/middleware/identity"
)

type nopBackend struct{}

func (nopBackend) ReadOverrides(context.Context) ([]rbac.StoredOverride, error) { return nil, nil }
func (nopBackend) WriteOverride(context.Context, rbac.StoredOverride) error      { return nil }
func (nopBackend) DeleteOverride(context.Context, rbac.Role) error               { return nil }

func newTestService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()

	store := rbac.NewStore(nopBackend{})

	return New(cfg, rbac.NewGuard(rbac.NewResolver(store)), store)
}

func TestNewPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil, nil) })
	assert.Panics(t, func() { New(&config.Config{}, nil, nil) })
}

func TestCheckAlive(t *testing.T) {
	s := newTestService(t, &config.Config{})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.alive.Store(false)

	resp, err = s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	s := newTestService(t, &config.Config{})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestAPIRequiresIdentity(t *testing.T) {
	s := newTestService(t, &config.Config{})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomIdentityHeaders(t *testing.T) {
	s := newTestService(t, &config.Config{
		Webserver: config.Webserver{UserHeader: "X-Auth-User", RoleHeader: "X-Auth-Role", CleanPath: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1//me", nil)
	req.Header.Set("X-Auth-User", "ana")
	req.Header.Set("X-Auth-Role", "leader")
	req.Header.Set(identity.DefaultRoleHeader, "admin")

	resp, err := s.App.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"role":"leader"`)
}

func TestAddr(t *testing.T) {
	s := newTestService(t, &config.Config{Webserver: config.Webserver{Port: 8080}})
	assert.Equal(t, ":8080", s.Addr())
}
