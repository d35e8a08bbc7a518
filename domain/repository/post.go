package repository

import (
	"context"
	"time"

	"trucking-news/domain/model"
)

// IPost persists news posts.
type IPost interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetRecent(ctx context.Context, limit int) ([]*model.Post, error)
	GetFirstPending(ctx context.Context) (*model.Post, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	MarkPosted(ctx context.Context, id int64, facebookPostID string) error
	MarkFailed(ctx context.Context, id int64, errorMessage string) error
	CountByStatus(ctx context.Context, status string) (int, error)
	HasPostedSince(ctx context.Context, since time.Time) (bool, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
