package steam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evaluator/models"
	"evaluator/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Interval: time.Millisecond,
		Budget:   time.Second,
	}
}

func TestLeaderboardClient_FetchEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("returns entries in source order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/leaderboard/cove_1_stable", r.URL.Path)
			fmt.Fprint(w, `{"entries":[
				{"steam_id":"p1","score":10},
				{"steam_id":"p2","score":20},
				{"steam_id":"p3","score":30}
			]}`)
		}))
		defer server.Close()

		client := NewLeaderboardClient(server.URL, testRetryPolicy())
		entries, err := client.FetchEntries(ctx, "cove_1_stable")
		require.NoError(t, err)

		assert.Equal(t, []models.RankedEntry{
			{PlayerID: "p1", RawScore: 10},
			{PlayerID: "p2", RawScore: 20},
			{PlayerID: "p3", RawScore: 30},
		}, entries)
	})

	t.Run("retries transient failures until success", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			if requests <= 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, `{"entries":[{"steam_id":"p1","score":5}]}`)
		}))
		defer server.Close()

		client := NewLeaderboardClient(server.URL, testRetryPolicy())
		entries, err := client.FetchEntries(ctx, "cove_1_stable")
		require.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, 3, requests)
	})

	t.Run("not found is distinct and not retried", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewLeaderboardClient(server.URL, testRetryPolicy())
		_, err := client.FetchEntries(ctx, "ghost_1_stable")
		assert.ErrorIs(t, err, service.ErrLeaderboardNotFound)
		assert.Equal(t, 1, requests)
	})

	t.Run("budget expiry carries the last status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewLeaderboardClient(server.URL, RetryPolicy{
			Interval: time.Millisecond,
			Budget:   20 * time.Millisecond,
		})

		_, err := client.FetchEntries(ctx, "cove_1_stable")
		require.Error(t, err)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	})

	t.Run("malformed body is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>definitely not json</html>`)
		}))
		defer server.Close()

		client := NewLeaderboardClient(server.URL, testRetryPolicy())
		_, err := client.FetchEntries(ctx, "cove_1_stable")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrLeaderboardNotFound)
	})
}
