package lookup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/interpolate/pkg/interpolate"
	"github.com/randalmurphal/interpolate/pkg/interpolate/lookup"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("  1.2.3\n"))
	})
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Authorization")))
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTP(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("body", func(t *testing.T) {
		got, ok, err := lookup.HTTP{}.Resolve(ctx, srv.URL+"/version")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "  1.2.3\n", got)
	})

	t.Run("trim space", func(t *testing.T) {
		got, _, err := lookup.HTTP{TrimSpace: true}.Resolve(ctx, srv.URL+"/version")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", got)
	})

	t.Run("headers", func(t *testing.T) {
		h := lookup.HTTP{Header: http.Header{"Authorization": {"Bearer t0k"}}}
		got, _, err := h.Resolve(ctx, srv.URL+"/auth")
		require.NoError(t, err)
		assert.Equal(t, "Bearer t0k", got)
	})

	t.Run("non-2xx is error", func(t *testing.T) {
		_, ok, err := lookup.HTTP{}.Resolve(ctx, srv.URL+"/missing")
		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("body limit", func(t *testing.T) {
		_, _, err := lookup.HTTP{MaxBodyBytes: 16}.Resolve(ctx, srv.URL+"/big")
		assert.ErrorIs(t, err, lookup.ErrBodyTooLarge)

		got, _, err := lookup.HTTP{MaxBodyBytes: 64}.Resolve(ctx, srv.URL+"/big")
		require.NoError(t, err)
		assert.Len(t, got, 64)
	})

	t.Run("scheme rejected", func(t *testing.T) {
		_, _, err := lookup.HTTP{}.Resolve(ctx, "file:///etc/passwd")
		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := lookup.HTTP{}.Resolve(cctx, srv.URL+"/version")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTP_WithSubstitutor(t *testing.T) {
	srv := newTestServer(t)

	reg := interpolate.NewRegistry().Register(lookup.PrefixHTTP, lookup.HTTP{TrimSpace: true})
	sub := interpolate.NewSubstitutor(interpolate.NewDispatcher(reg))

	got, err := sub.Substitute(context.Background(), "v${url:"+srv.URL+"/version}")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got)
}
