package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trucking-news/domain/model"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

const (
	userAgent  = "trucking-news/1.0 (+https://github.com/trucking-news)"
	maxEntries = 10 // most recent entries per source per fetch
)

// Fetcher downloads and parses RSS/Atom feeds. Summaries are stripped of
// HTML before they reach the rest of the pipeline.
type Fetcher struct {
	HTTPClient *http.Client
	sanitizer  *bluemonday.Policy
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// Fetch returns up to maxEntries articles from one source.
func (f *Fetcher) Fetch(ctx context.Context, source *model.NewsSource) ([]*model.Article, error) {
	parsed, err := f.parse(ctx, source.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	items := parsed.Items
	if len(items) > maxEntries {
		items = items[:maxEntries]
	}
	articles := make([]*model.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		summary := f.clean(item.Description)
		content := f.clean(item.Content)
		if content == "" {
			content = summary
		}
		a := &model.Article{
			Title:   strings.TrimSpace(item.Title),
			URL:     item.Link,
			Summary: summary,
			Content: content,
			Source:  source.Name,
		}
		if item.Published != "" {
			a.Published = item.Published
		}
		if item.Image != nil {
			a.ImageURL = item.Image.URL
		} else if len(item.Enclosures) > 0 && strings.HasPrefix(item.Enclosures[0].Type, "image/") {
			a.ImageURL = item.Enclosures[0].URL
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// Validate checks that the URL serves a parseable feed with entries.
func (f *Fetcher) Validate(ctx context.Context, url string) (*model.FeedInfo, error) {
	parsed, err := f.parse(ctx, url)
	if err != nil {
		return nil, err
	}
	return &model.FeedInfo{Title: parsed.Title, EntryCount: len(parsed.Items)}, nil
}

func (f *Fetcher) parse(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	parser := gofeed.NewParser()
	parsed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return parsed, nil
}

func (f *Fetcher) clean(s string) string {
	return strings.TrimSpace(f.sanitizer.Sanitize(s))
}
