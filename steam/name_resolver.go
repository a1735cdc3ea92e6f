package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	log "github.com/sirupsen/logrus"
)

// NameResolver resolves player display names through the web API. Best
// effort: any failure yields an empty string so ingestion caches a
// placeholder instead of aborting. Results are cached for the run; name
// lookups may overlap, so the cache is guarded.
type NameResolver struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	mu    sync.RWMutex
	cache map[string]string
}

// NewNameResolver creates a display-name resolver against the web API
func NewNameResolver(baseURL, apiKey string) *NameResolver {
	return &NameResolver{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		cache:      make(map[string]string),
	}
}

type playerSummariesResponse struct {
	Response struct {
		Players []struct {
			SteamID     string `json:"steamid"`
			PersonaName string `json:"personaname"`
		} `json:"players"`
	} `json:"response"`
}

// DisplayName returns the player's persona name, or "" when the lookup
// fails for any reason.
func (r *NameResolver) DisplayName(ctx context.Context, playerID string) string {
	r.mu.RLock()
	name, hit := r.cache[playerID]
	r.mu.RUnlock()
	if hit {
		return name
	}

	name = r.fetch(ctx, playerID)

	r.mu.Lock()
	r.cache[playerID] = name
	r.mu.Unlock()

	return name
}

func (r *NameResolver) fetch(ctx context.Context, playerID string) string {
	query := url.Values{}
	query.Set("key", r.apiKey)
	query.Set("steamids", playerID)
	requestURL := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v2/?%s", r.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		log.WithError(err).WithField("player", playerID).Warn("Failed to build player summary request")
		return ""
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("player", playerID).Warn("Player summary request failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"player": playerID,
			"status": resp.StatusCode,
		}).Warn("Player summary request rejected")
		return ""
	}

	var payload playerSummariesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.WithError(err).WithField("player", playerID).Warn("Failed to decode player summary")
		return ""
	}

	if len(payload.Response.Players) == 0 {
		return ""
	}

	return payload.Response.Players[0].PersonaName
}
