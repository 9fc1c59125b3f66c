package crawler

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders pages in headless Chrome before returning their
// HTML, for listings that build product links with JavaScript.
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
	gate     Gate
}

func NewBrowserFetcher(userAgent string, timeout time.Duration, gate Gate) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &BrowserFetcher{allocCtx: allocCtx, cancel: cancel, timeout: timeout, gate: gate}
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() {
	f.cancel()
}

func (f *BrowserFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	if err := admit(ctx, f.gate, targetURL); err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	// Status of the first document response, 0 until seen.
	var status atomic.Int64
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, resp.Response.Status)
		}
	})

	var body string
	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(targetURL),
		chromedp.OuterHTML("html", &body, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &FetchError{URL: targetURL, Err: err}
	}
	if code := int(status.Load()); code != 0 {
		if err := statusError(targetURL, code); err != nil {
			return nil, err
		}
	}
	return io.NopCloser(strings.NewReader(body)), nil
}
