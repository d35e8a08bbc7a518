package repository

import (
	"context"

	"trucking-news/domain/model"
)

// IPageCredential persists the managed Facebook page credential.
type IPageCredential interface {
	Get(ctx context.Context) (*model.PageCredential, error)
	Save(ctx context.Context, cred *model.PageCredential) error
}
