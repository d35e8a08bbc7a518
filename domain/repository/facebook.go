package repository

import (
	"context"
	"time"

	"trucking-news/domain/model"
)

// ITokenExchanger trades a current page token plus app identity for a fresh
// page token with a renewed expiry. This is the only capability the token
// lifecycle policy depends on.
type ITokenExchanger interface {
	ExchangePageToken(ctx context.Context, currentToken, appID, appSecret, pageID string) (newToken string, expiresAt time.Time, err error)
}

// IFacebookGraph is the full Graph API surface used by the application.
type IFacebookGraph interface {
	ITokenExchanger
	PublishPost(ctx context.Context, pageID, accessToken string, post *model.Post) (string, error)
	VerifyPage(ctx context.Context, pageID, accessToken string) (*model.FacebookPage, error)
	DebugToken(ctx context.Context, accessToken string) (*model.TokenInfo, error)
	DeletePost(ctx context.Context, facebookPostID, accessToken string) error
	PageInsights(ctx context.Context, pageID, accessToken string) (map[string]int64, error)
}
