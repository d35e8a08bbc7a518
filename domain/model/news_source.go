package model

import "time"

// News source types.
const (
	SourceTypeRSS     = "rss"
	SourceTypeWebsite = "website"
)

// NewsSource is one feed the fetcher pulls trucking news from.
type NewsSource struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	URL                  string     `json:"url"`
	Type                 string     `json:"type"`
	Enabled              bool       `json:"enabled"`
	LastFetched          *time.Time `json:"last_fetched,omitempty"`
	TotalArticlesFetched int        `json:"total_articles_fetched"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Article is a single fetched item before it is saved as a Post.
type Article struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url,omitempty"`
	Source    string `json:"source"`
	Published string `json:"published,omitempty"`
}
