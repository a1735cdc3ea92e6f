package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"evaluator/models"
	"evaluator/service"

	"github.com/cenkalti/backoff/v4"
)

// LeaderboardClient fetches the full ranked entry sequence for a derived
// leaderboard name. The endpoint returns entries already ordered
// best-to-worst; rank is assigned positionally by the ingester.
type LeaderboardClient struct {
	httpClient *http.Client
	baseURL    string
	retry      RetryPolicy
}

// NewLeaderboardClient creates a leaderboard client for the given endpoint
func NewLeaderboardClient(baseURL string, retry RetryPolicy) *LeaderboardClient {
	return &LeaderboardClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		retry:      retry,
	}
}

type leaderboardEntryPayload struct {
	SteamID string `json:"steam_id"`
	Score   int64  `json:"score"`
}

type leaderboardPayload struct {
	Entries []leaderboardEntryPayload `json:"entries"`
}

// FetchEntries returns the leaderboard's ranked entries, or
// service.ErrLeaderboardNotFound when the name has no leaderboard behind it.
// Non-success responses are retried per the policy; once the budget expires
// the last status comes back as a StatusError.
func (c *LeaderboardClient) FetchEntries(ctx context.Context, leaderboardName string) ([]models.RankedEntry, error) {
	requestURL := fmt.Sprintf("%s/leaderboard/%s", c.baseURL, url.PathEscape(leaderboardName))

	var entries []models.RankedEntry
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to build leaderboard request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("leaderboard request failed: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(fmt.Errorf("%w: %s", service.ErrLeaderboardNotFound, leaderboardName))
		}
		if resp.StatusCode != http.StatusOK {
			return &StatusError{StatusCode: resp.StatusCode}
		}

		var payload leaderboardPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode leaderboard response: %w", err))
		}

		entries = make([]models.RankedEntry, 0, len(payload.Entries))
		for _, entry := range payload.Entries {
			entries = append(entries, models.RankedEntry{
				PlayerID: entry.SteamID,
				RawScore: entry.Score,
			})
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(c.retry.backOff(), ctx)); err != nil {
		return nil, err
	}

	return entries, nil
}
