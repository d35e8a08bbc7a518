package repository

import (
	"context"

	"trucking-news/domain/model"
)

// IUser persists operator accounts.
type IUser interface {
	GetByUserName(ctx context.Context, userName string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) error
}
