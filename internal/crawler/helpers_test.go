package crawler

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// pageFetcher serves canned HTML; unknown URLs fail with a 404 FetchError.
type pageFetcher struct {
	pages     map[string]string
	requested []string
}

func (f *pageFetcher) Fetch(_ context.Context, targetURL string) (io.ReadCloser, error) {
	f.requested = append(f.requested, targetURL)
	page, ok := f.pages[targetURL]
	if !ok {
		return nil, statusError(targetURL, 404)
	}
	return io.NopCloser(strings.NewReader(page)), nil
}

func mustDocument(t *testing.T, rawHTML string) *goquery.Document {
	t.Helper()
	doc, err := parseDocument(strings.NewReader(rawHTML), "https://www.yoro-store.com/")
	require.NoError(t, err)
	return doc
}
