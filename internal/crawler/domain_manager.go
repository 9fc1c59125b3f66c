package crawler

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DomainManager enforces robots.txt and a minimum interval between any two
// requests of a run, whatever their host. It implements Gate.
type DomainManager struct {
	mu            sync.Mutex
	client        *http.Client
	userAgent     string
	respectRobots bool
	logger        *zap.Logger
	limiter       *rate.Limiter
	robotsCache   map[string]*robotstxt.Group
}

func NewDomainManager(client *http.Client, userAgent string, interval time.Duration, respectRobots bool, logger *zap.Logger) *DomainManager {
	return &DomainManager{
		client:        client,
		userAgent:     userAgent,
		respectRobots: respectRobots,
		logger:        logger,
		// Burst 1: one request now, then one per interval.
		limiter:     rate.NewLimiter(rate.Every(interval), 1),
		robotsCache: make(map[string]*robotstxt.Group),
	}
}

// Wait blocks until the next request may be sent. The first request of a
// run passes immediately; robots.txt fetches count as requests too.
func (d *DomainManager) Wait(ctx context.Context, targetURL string) error {
	if _, err := url.Parse(targetURL); err != nil {
		return err
	}
	return d.limiter.Wait(ctx)
}

func (d *DomainManager) IsAllowed(ctx context.Context, link string) bool {
	if !d.respectRobots {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	group, exists := d.robotsCache[u.Host]
	if !exists {
		group = d.fetchRobots(ctx, u)
		if ctx.Err() == nil {
			d.robotsCache[u.Host] = group
		}
	}

	if group == nil {
		return true // No robots.txt or parse error = Allowed
	}
	return group.Test(u.Path)
}

func (d *DomainManager) fetchRobots(ctx context.Context, u *url.URL) *robotstxt.Group {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	if err := d.limiter.Wait(ctx); err != nil {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("robots.txt unavailable", zap.String("url", robotsURL), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		d.logger.Warn("robots.txt unparsable", zap.String("url", robotsURL), zap.Error(err))
		return nil
	}
	return data.FindGroup(d.userAgent)
}
