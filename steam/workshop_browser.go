package steam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// ProbePolicy bounds the empty-page probe of the workshop listing: the
// listing is eventually consistent, so an empty-looking page is re-fetched
// a fixed number of times before it is trusted as the end of the listing.
type ProbePolicy struct {
	Interval time.Duration
	Attempts int
}

// DefaultProbePolicy is the reference probe policy: five attempts, five
// seconds apart.
func DefaultProbePolicy() ProbePolicy {
	return ProbePolicy{
		Interval: 5 * time.Second,
		Attempts: 5,
	}
}

// errEmptyPage marks a response carrying the listing's empty sentinel.
var errEmptyPage = errors.New("workshop page is empty")

// WorkshopBrowser pages through the community workshop listing for one app.
// The page counter starts at zero and is incremented before each fetch, so
// every run walks the listing from page 1. Forward-only within a run.
type WorkshopBrowser struct {
	httpClient *http.Client
	baseURL    string
	appID      int
	probe      ProbePolicy

	page int
}

// NewWorkshopBrowser creates a browser over the community listing
func NewWorkshopBrowser(baseURL string, appID int, probe ProbePolicy) *WorkshopBrowser {
	return &WorkshopBrowser{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		appID:      appID,
		probe:      probe,
	}
}

// NextPage fetches the next listing page and returns the candidate published
// file ids on it. ok is false once the page has looked empty for the whole
// probe budget, which is the listing's exhaustion signal. A non-empty page is
// returned no matter how many probes it took.
func (b *WorkshopBrowser) NextPage(ctx context.Context) ([]string, bool, error) {
	b.page++
	requestURL := fmt.Sprintf(
		"%s/workshop/browse/?appid=%d&actualsort=mostrecent&browsesort=mostrecent&p=%d",
		b.baseURL, b.appID, b.page,
	)

	var ids []string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to build workshop request: %w", err))
		}

		resp, err := b.httpClient.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("workshop request failed: %w", err))
		}
		defer resp.Body.Close()

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to parse workshop page: %w", err))
		}

		if doc.Find("#no_items").Length() > 0 {
			return errEmptyPage
		}

		ids = ids[:0]
		doc.Find(".ugc").Each(func(_ int, s *goquery.Selection) {
			if id, exists := s.Attr("data-publishedfileid"); exists {
				ids = append(ids, id)
			}
		})
		return nil
	}

	notify := func(err error, _ time.Duration) {
		if errors.Is(err, errEmptyPage) {
			log.WithField("page", b.page).Debug("Workshop page looks empty, probing again")
		}
	}

	// Attempts below 1 would underflow the retry count; a single fetch is
	// the floor.
	attempts := b.probe.Attempts
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(b.probe.Interval),
		uint64(attempts-1),
	)
	err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify)
	if errors.Is(err, errEmptyPage) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return ids, true, nil
}
