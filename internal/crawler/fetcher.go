package crawler

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Fetcher returns the UTF-8 HTML body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error)
}

// Gate decides whether a URL may be requested and paces requests.
type Gate interface {
	IsAllowed(ctx context.Context, link string) bool
	Wait(ctx context.Context, link string) error
}

type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	gate      Gate
}

// NewHTTPFetcher returns a fetcher sending userAgent on every request. gate may be nil.
func NewHTTPFetcher(client *http.Client, userAgent string, gate Gate) *HTTPFetcher {
	return &HTTPFetcher{client: client, userAgent: userAgent, gate: gate}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	if err := admit(ctx, f.gate, targetURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &FetchError{URL: targetURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: targetURL, Err: err}
	}
	if err := statusError(targetURL, resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		resp.Body.Close()
		return nil, &FetchError{URL: targetURL, Err: err}
	}
	return readCloser{Reader: body, Closer: resp.Body}, nil
}

func admit(ctx context.Context, gate Gate, targetURL string) error {
	if gate == nil {
		return nil
	}
	if !gate.IsAllowed(ctx, targetURL) {
		return &FetchError{URL: targetURL, Err: ErrDisallowed}
	}
	if err := gate.Wait(ctx, targetURL); err != nil {
		return &FetchError{URL: targetURL, Err: err}
	}
	return nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// fetchDocument fetches targetURL and parses it into a queryable document.
func fetchDocument(ctx context.Context, f Fetcher, targetURL string) (*goquery.Document, error) {
	body, err := f.Fetch(ctx, targetURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return parseDocument(body, targetURL)
}

func parseDocument(r io.Reader, pageURL string) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := goquery.NewDocumentFromNode(root)
	if u, err := url.Parse(pageURL); err == nil {
		doc.Url = u
	}
	return doc, nil
}

// Utility to resolve relative URLs (e.g. "/about" -> "https://site.com/about")
func resolveURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(u).String()
}
