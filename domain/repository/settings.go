package repository

import (
	"context"

	"trucking-news/domain/model"
)

// ISettings persists the singleton settings row.
type ISettings interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) error
}
