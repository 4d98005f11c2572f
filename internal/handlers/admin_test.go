package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/store"
)

func TestAdminOverviewRequiresSuperuser(t *testing.T) {
	f := newFixture(t)
	admin, ac := f.signup("root@example.com", "root")
	_, uc := f.signup("alice@example.com", "alice")

	rec := f.get("/api/admin/overview", uc)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.mem.Users[admin.ID].IsSuperuser = true
	rec = f.get("/api/admin/overview", ac)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[store.Overview](t, rec)
	assert.Equal(t, 2, out.TotalUsers)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusOK, f.get("/healthz", nil).Code)

	f.mem.Err = assert.AnError
	assert.Equal(t, http.StatusServiceUnavailable, f.get("/healthz", nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.get("/login", nil)

	rec := f.get("/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/login"`)
}
