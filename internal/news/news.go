// Package news fetches today's tax and business headlines from an RSS or
// Atom feed.
package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/finseva/finseva/internal/logging"
	"github.com/mmcdole/gofeed"
)

const (
	// DefaultLimit caps the number of items returned
	DefaultLimit = 8
	// CacheTTL is how long a fetched result is served before refetching
	CacheTTL = 24 * time.Hour

	maxFeedBytes = 4 << 20
)

// Item is a single headline
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt"`
}

// Fetcher downloads and filters the feed, caching the result
type Fetcher struct {
	feedURL string
	limit   int
	client  *http.Client
	logger  logging.Logger

	mu        sync.Mutex
	cached    []Item
	fetchedAt time.Time
}

// NewFetcher creates a fetcher. A nil client uses a client with a 10s timeout.
func NewFetcher(feedURL string, limit int, client *http.Client, logger logging.Logger) *Fetcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Fetcher{feedURL: feedURL, limit: limit, client: client, logger: logger}
}

// Today returns up to limit items published on now's calendar date, in
// now's location
func (f *Fetcher) Today(ctx context.Context, now time.Time) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != nil && now.Sub(f.fetchedAt) < CacheTTL {
		return f.cached, nil
	}

	items, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}

	today := filterToday(items, now, f.limit)
	f.logger.Debugf("tax news: %d of %d feed items published today", len(today), len(items))
	f.cached = today
	f.fetchedAt = now
	return today, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]*gofeed.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	return parse(io.LimitReader(resp.Body, maxFeedBytes))
}

// parse decodes an RSS or Atom document
func parse(r io.Reader) ([]*gofeed.Item, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed.Items, nil
}

// filterToday keeps items whose publication date falls on now's date.
// Atom entries without a published date fall back to their updated date.
func filterToday(items []*gofeed.Item, now time.Time, limit int) []Item {
	year, month, day := now.Date()
	out := []Item{}
	for _, item := range items {
		published, raw := publishedAt(item)
		if published == nil {
			continue
		}
		y, m, d := published.In(now.Location()).Date()
		if y != year || m != month || d != day {
			continue
		}
		out = append(out, Item{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			PublishedAt: strings.TrimSpace(raw),
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

func publishedAt(item *gofeed.Item) (*time.Time, string) {
	if item.PublishedParsed != nil {
		return item.PublishedParsed, item.Published
	}
	return item.UpdatedParsed, item.Updated
}
