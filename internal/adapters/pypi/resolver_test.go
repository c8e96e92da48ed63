package pypi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/adapters/pypi"
	"go.trai.ch/reinhard/internal/core/domain"
)

func newTestResolver(t *testing.T, handler http.Handler) *pypi.Resolver {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	resolver, err := pypi.NewResolverWithPath(server.URL, t.TempDir())
	require.NoError(t, err)
	return resolver
}

func TestResolver_Project(t *testing.T) {
	var requests atomic.Int64

	resolver := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/pypi/hikari-tanjun/json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"info": {"name": "hikari-tanjun", "version": "2.17.1"},
			"releases": {"2.16.0": [], "2.17.0": [], "2.17.1": []}
		}`))
	}))

	// The name is normalized before hitting the API.
	project, err := resolver.Project(context.Background(), "Hikari_Tanjun")
	require.NoError(t, err)
	assert.Equal(t, "hikari-tanjun", project.Name)
	assert.Equal(t, "2.17.1", project.Latest.String())
	assert.Len(t, project.Versions, 3)

	// The second lookup is served from the file cache.
	_, err = resolver.Project(context.Background(), "hikari-tanjun")
	require.NoError(t, err)
	assert.Equal(t, int64(1), requests.Load())
}

func TestResolver_Release(t *testing.T) {
	resolver := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pypi/hikari-tanjun/2.17.1/json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"info": {
				"name": "hikari-tanjun",
				"version": "2.17.1",
				"requires_dist": [
					"alluka (>=0.1.2,<1)",
					"hikari >=2.0.0.dev115",
					"mock ; extra == 'tests'",
					"typing-extensions ; python_version < \"3.11\""
				]
			}
		}`))
	}))

	release, err := resolver.Release(context.Background(), "hikari-tanjun", "2.17.1")
	require.NoError(t, err)
	assert.Equal(t, "2.17.1", release.Version.String())

	// Extra-gated requirements are dropped; plain markers are ignored.
	require.Len(t, release.Requires, 3)
	assert.Equal(t, "alluka", release.Requires[0].Name)
	assert.True(t, release.Requires[0].Spec.Match(domain.ParseVersion("0.4.0")))
	assert.False(t, release.Requires[0].Spec.Match(domain.ParseVersion("1.0.0")))
	assert.Equal(t, "hikari", release.Requires[1].Name)
	assert.Equal(t, "typing-extensions", release.Requires[2].Name)
	assert.True(t, release.Requires[2].Spec.IsEmpty())
}

func TestResolver_NotFound(t *testing.T) {
	resolver := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := resolver.Project(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestResolver_ServerError(t *testing.T) {
	resolver := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := resolver.Project(context.Background(), "hikari")
	require.ErrorIs(t, err, domain.ErrIndexRequestFailed)
}

func TestParseRequiresDist(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantOK   bool
		wantErr  bool
	}{
		{name: "Plain", raw: "hikari", wantName: "hikari", wantOK: true},
		{name: "Parenthesized Spec", raw: "alluka (>=0.1.2,<1)", wantName: "alluka", wantOK: true},
		{name: "Extras Bracket", raw: "sphinx[docs] >=7", wantName: "sphinx", wantOK: true},
		{name: "Extra Gated", raw: "mock ; extra == 'tests'", wantOK: false},
		{name: "Environment Marker", raw: "colorama ; sys_platform == \"win32\"", wantName: "colorama", wantOK: true},
		{name: "Garbage", raw: "=== nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok, err := pypi.ParseRequiresDist(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantName, req.Name)
			}
		})
	}
}
