package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameResolver_DisplayName(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves and caches the persona name", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			assert.Equal(t, "/ISteamUser/GetPlayerSummaries/v2/", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "p1", r.URL.Query().Get("steamids"))
			fmt.Fprint(w, `{"response":{"players":[{"steamid":"p1","personaname":"Racer"}]}}`)
		}))
		defer server.Close()

		resolver := NewNameResolver(server.URL, "test-key")
		assert.Equal(t, "Racer", resolver.DisplayName(ctx, "p1"))
		assert.Equal(t, "Racer", resolver.DisplayName(ctx, "p1"))
		assert.Equal(t, 1, requests)
	})

	t.Run("rejected lookup yields empty and is cached", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		resolver := NewNameResolver(server.URL, "bad-key")
		assert.Equal(t, "", resolver.DisplayName(ctx, "p1"))
		assert.Equal(t, "", resolver.DisplayName(ctx, "p1"))
		assert.Equal(t, 1, requests)
	})

	t.Run("unknown player yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response":{"players":[]}}`)
		}))
		defer server.Close()

		resolver := NewNameResolver(server.URL, "test-key")
		assert.Equal(t, "", resolver.DisplayName(ctx, "p2"))
	})

	t.Run("malformed body yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		}))
		defer server.Close()

		resolver := NewNameResolver(server.URL, "test-key")
		assert.Equal(t, "", resolver.DisplayName(ctx, "p3"))
	})
}
