package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyListingHTML = `<html><body>
	<div id="no_items" class="noItems">No items matching your search criteria were found.</div>
</body></html>`

const populatedListingHTML = `<html><body>
	<div class="workshopBrowseItems">
		<div class="ugc" data-publishedfileid="111"></div>
		<div class="ugc" data-publishedfileid="222"></div>
		<div class="ugc"></div>
	</div>
</body></html>`

func testProbePolicy() ProbePolicy {
	return ProbePolicy{
		Interval: time.Millisecond,
		Attempts: 5,
	}
}

func TestWorkshopBrowser_NextPage(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts published file ids", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "233610", r.URL.Query().Get("appid"))
			assert.Equal(t, "1", r.URL.Query().Get("p"))
			fmt.Fprint(w, populatedListingHTML)
		}))
		defer server.Close()

		browser := NewWorkshopBrowser(server.URL, 233610, testProbePolicy())
		ids, ok, err := browser.NextPage(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"111", "222"}, ids)
	})

	t.Run("page counter advances per call", func(t *testing.T) {
		var pages []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pages = append(pages, r.URL.Query().Get("p"))
			fmt.Fprint(w, populatedListingHTML)
		}))
		defer server.Close()

		browser := NewWorkshopBrowser(server.URL, 233610, testProbePolicy())
		_, _, err := browser.NextPage(ctx)
		require.NoError(t, err)
		_, _, err = browser.NextPage(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"1", "2"}, pages)
	})

	t.Run("empty-looking page is probed before it is trusted", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			if requests <= 4 {
				fmt.Fprint(w, emptyListingHTML)
				return
			}
			fmt.Fprint(w, populatedListingHTML)
		}))
		defer server.Close()

		browser := NewWorkshopBrowser(server.URL, 233610, testProbePolicy())
		ids, ok, err := browser.NextPage(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"111", "222"}, ids)
		assert.Equal(t, 5, requests)
	})

	t.Run("persistent emptiness is the exhaustion signal", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			fmt.Fprint(w, emptyListingHTML)
		}))
		defer server.Close()

		browser := NewWorkshopBrowser(server.URL, 233610, testProbePolicy())
		ids, ok, err := browser.NextPage(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, ids)
		assert.Equal(t, 5, requests)
	})

	t.Run("zero probe attempts still fetches once", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			fmt.Fprint(w, emptyListingHTML)
		}))
		defer server.Close()

		browser := NewWorkshopBrowser(server.URL, 233610, ProbePolicy{
			Interval: time.Millisecond,
			Attempts: 0,
		})
		ids, ok, err := browser.NextPage(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, ids)
		assert.Equal(t, 1, requests)
	})

	t.Run("page with no sentinel and no items is a valid empty page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><div class="workshopBrowseItems"></div></body></html>`)
		}))
		defer server.Close()

		browser := NewWorkshopBrowser(server.URL, 233610, testProbePolicy())
		ids, ok, err := browser.NextPage(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, ids)
	})
}
