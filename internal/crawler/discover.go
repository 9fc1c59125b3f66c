package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Discoverer collects product page URLs from a category listing.
type Discoverer struct {
	fetcher     Fetcher
	categoryURL string
	baseURL     string
	links       Chain
	logger      *zap.Logger
}

func NewDiscoverer(fetcher Fetcher, categoryURL, baseURL string, sel Selectors, fallbackLimit int, logger *zap.Logger) *Discoverer {
	return &Discoverer{
		fetcher:     fetcher,
		categoryURL: categoryURL,
		baseURL:     baseURL,
		links: Chain{
			Match(sel.ProductLinks...),
			Limit(Match(sel.FallbackLinks...), fallbackLimit),
		},
		logger: logger,
	}
}

// Discover fetches the category page and returns absolute product URLs in
// document order, duplicates included. A fetch failure is returned as is.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	d.logger.Info("fetching category page", zap.String("url", d.categoryURL))

	doc, err := fetchDocument(ctx, d.fetcher, d.categoryURL)
	if err != nil {
		return nil, err
	}

	urls := d.ProductLinks(doc)
	d.logger.Info("product links found", zap.Int("count", len(urls)))
	return urls, nil
}

// ProductLinks runs the link chain against an already parsed category page.
func (d *Discoverer) ProductLinks(doc *goquery.Document) []string {
	urls := []string{}
	d.links.Select(doc).Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return
		}
		link := normalizeLink(d.baseURL, href)
		if link == "" {
			d.logger.Debug("unresolvable link", zap.String("href", href))
			return
		}
		urls = append(urls, link)
	})
	return urls
}

// normalizeLink resolves root-relative and scheme-less links against base and
// passes anything starting with "http" through untouched.
func normalizeLink(base, href string) string {
	if strings.HasPrefix(href, "/") || !strings.HasPrefix(href, "http") {
		return resolveURL(base, href)
	}
	return href
}
