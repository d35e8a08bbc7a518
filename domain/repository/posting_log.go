package repository

import (
	"context"

	"trucking-news/domain/model"
)

// IPostingLog appends and reads activity log entries.
type IPostingLog interface {
	Append(ctx context.Context, log *model.PostingLog) error
	GetRecent(ctx context.Context, limit int) ([]*model.PostingLog, error)
}
