package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	testBase     = "https://www.yoro-store.com"
	testCategory = "https://www.yoro-store.com/product-category/oil-filter/"
)

func newTestDiscoverer(t *testing.T, listing string) (*Discoverer, *pageFetcher) {
	f := &pageFetcher{pages: map[string]string{testCategory: listing}}
	return NewDiscoverer(f, testCategory, testBase, DefaultSelectors(), 50, zaptest.NewLogger(t)), f
}

func TestDiscover_NormalizesPrimaryLinks(t *testing.T) {
	d, _ := newTestDiscoverer(t, `
		<ul>
			<li class="product-item"><a href="/product/a">A</a></li>
			<li class="product-item"><a href="https://www.yoro-store.com/product/b">B</a></li>
		</ul>`)

	urls, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.yoro-store.com/product/a",
		"https://www.yoro-store.com/product/b",
	}, urls)
}

func TestDiscover_KeepsDocumentOrderAndDuplicates(t *testing.T) {
	d, _ := newTestDiscoverer(t, `
		<a class="woocommerce-loop-product__link" href="/product/z">Z</a>
		<h2 class="product-title"><a href="product/y">Y</a></h2>
		<a class="woocommerce-loop-product__link" href="/product/z">Z again</a>
		<div class="product-item"><a href="">empty</a><a>no href</a></div>`)

	urls, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.yoro-store.com/product/z",
		"https://www.yoro-store.com/product/y",
		"https://www.yoro-store.com/product/z",
	}, urls)
}

func TestDiscover_PrimaryWinsOverFallback(t *testing.T) {
	d, _ := newTestDiscoverer(t, `
		<a href="/shop?pid=1">fallback</a>
		<div class="product-item"><a href="/product/only">primary</a></div>`)

	urls, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.yoro-store.com/product/only"}, urls)
}

func TestDiscover_FallbackIsCapped(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, `<a href="/shop/item?pid=%d">item %d</a>`, i, i)
	}
	b.WriteString(`<a href="/about">about</a>`)
	d, _ := newTestDiscoverer(t, b.String())

	urls, err := d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, urls, 50)
	assert.Equal(t, "https://www.yoro-store.com/shop/item?pid=0", urls[0])
	assert.Equal(t, "https://www.yoro-store.com/shop/item?pid=49", urls[49])
}

func TestDiscover_FallbackMatchesProductToken(t *testing.T) {
	d, _ := newTestDiscoverer(t, `
		<a href="/about">about</a>
		<a href="http://cdn.example.com/product-image.jpg">image</a>
		<a href="/products/oil-1">oil</a>`)

	urls, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://cdn.example.com/product-image.jpg",
		"https://www.yoro-store.com/products/oil-1",
	}, urls)
}

func TestDiscover_NoMatchesIsEmpty(t *testing.T) {
	d, _ := newTestDiscoverer(t, `<p>nothing here</p><a href="/about">about</a>`)

	urls, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestDiscover_FetchErrorPropagates(t *testing.T) {
	f := &pageFetcher{pages: map[string]string{}}
	d := NewDiscoverer(f, testCategory, testBase, DefaultSelectors(), 50, zaptest.NewLogger(t))

	_, err := d.Discover(context.Background())
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 404, fetchErr.StatusCode)
	assert.Equal(t, testCategory, fetchErr.URL)
}

func TestNormalizeLink(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/product/a":                  "https://www.yoro-store.com/product/a",
		"product/a":                   "https://www.yoro-store.com/product/a",
		"?pid=7":                      "https://www.yoro-store.com?pid=7",
		"//cdn.yoro-store.com/p/1":    "https://cdn.yoro-store.com/p/1",
		"https://other.example/p?x=1": "https://other.example/p?x=1",
	}
	for href, want := range cases {
		assert.Equal(t, want, normalizeLink(testBase, href), href)
	}
}
