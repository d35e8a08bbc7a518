package repository

import (
	"context"

	"trucking-news/domain/model"
)

// IFeedFetcher pulls articles from one news source.
type IFeedFetcher interface {
	Fetch(ctx context.Context, source *model.NewsSource) ([]*model.Article, error)
	Validate(ctx context.Context, url string) (*model.FeedInfo, error)
}

// IArticleCache remembers which articles were already seen, so restarts and
// overlapping fetches do not produce duplicate posts.
type IArticleCache interface {
	Seen(ctx context.Context, hash string) (bool, error)
	MarkSeen(ctx context.Context, hash string) error
}
