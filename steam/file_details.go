package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"evaluator/models"

	"github.com/cenkalti/backoff/v4"
)

// FileDetailsClient resolves catalog details for workshop candidates through
// the remote-storage web API, one batched POST per discovery page.
type FileDetailsClient struct {
	httpClient *http.Client
	baseURL    string
	retry      RetryPolicy
}

// NewFileDetailsClient creates a catalog-detail client against the web API
func NewFileDetailsClient(baseURL string, retry RetryPolicy) *FileDetailsClient {
	return &FileDetailsClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		retry:      retry,
	}
}

type publishedFileDetailsPayload struct {
	PublishedFileID string  `json:"publishedfileid"`
	Title           *string `json:"title"`
	Filename        *string `json:"filename"`
	Creator         *string `json:"creator"`
	Result          int     `json:"result"`
}

type publishedFileDetailsResponse struct {
	Response struct {
		Result               int                           `json:"result"`
		ResultCount          int                           `json:"resultcount"`
		PublishedFileDetails []publishedFileDetailsPayload `json:"publishedfiledetails"`
	} `json:"response"`
}

// GetDetails resolves details for a batch of published file ids. Records
// missing optional fields come back with nil pointers; the caller decides
// what is ingestable. Retries follow the same policy as the leaderboard
// fetch.
func (c *FileDetailsClient) GetDetails(ctx context.Context, ids []string) ([]*models.LevelDetails, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	form := url.Values{}
	form.Set("itemcount", strconv.Itoa(len(ids)))
	for i, id := range ids {
		form.Set(fmt.Sprintf("publishedfileids[%d]", i), id)
	}
	body := form.Encode()

	requestURL := c.baseURL + "/ISteamRemoteStorage/GetPublishedFileDetails/v1/"

	var details []*models.LevelDetails
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, strings.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to build file-details request: %w", err))
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("file-details request failed: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &StatusError{StatusCode: resp.StatusCode}
		}

		var payload publishedFileDetailsResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode file-details response: %w", err))
		}

		details = make([]*models.LevelDetails, 0, len(payload.Response.PublishedFileDetails))
		for _, d := range payload.Response.PublishedFileDetails {
			details = append(details, &models.LevelDetails{
				PublishedFileID: d.PublishedFileID,
				Title:           d.Title,
				Filename:        d.Filename,
				Creator:         d.Creator,
			})
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(c.retry.backOff(), ctx)); err != nil {
		return nil, err
	}

	return details, nil
}
