package repository

import (
	"context"
	"time"

	"trucking-news/domain/model"
)

// INewsSource persists configured news sources.
type INewsSource interface {
	Create(ctx context.Context, source *model.NewsSource) error
	GetByID(ctx context.Context, id int64) (*model.NewsSource, error)
	GetAll(ctx context.Context) ([]*model.NewsSource, error)
	GetEnabled(ctx context.Context) ([]*model.NewsSource, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) error
	RecordFetch(ctx context.Context, id int64, fetchedAt time.Time, articleCount int) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
