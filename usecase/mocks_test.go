package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"trucking-news/domain/model"
)

// Mock implementations shared across usecase tests.

type MockPageCredentialRepository struct {
	mock.Mock
}

func (m *MockPageCredentialRepository) Get(ctx context.Context) (*model.PageCredential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PageCredential), args.Error(1)
}

func (m *MockPageCredentialRepository) Save(ctx context.Context, cred *model.PageCredential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

type MockFacebookGraph struct {
	mock.Mock
}

func (m *MockFacebookGraph) ExchangePageToken(ctx context.Context, currentToken, appID, appSecret, pageID string) (string, time.Time, error) {
	args := m.Called(ctx, currentToken, appID, appSecret, pageID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockFacebookGraph) PublishPost(ctx context.Context, pageID, accessToken string, post *model.Post) (string, error) {
	args := m.Called(ctx, pageID, accessToken, post)
	return args.String(0), args.Error(1)
}

func (m *MockFacebookGraph) VerifyPage(ctx context.Context, pageID, accessToken string) (*model.FacebookPage, error) {
	args := m.Called(ctx, pageID, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FacebookPage), args.Error(1)
}

func (m *MockFacebookGraph) DebugToken(ctx context.Context, accessToken string) (*model.TokenInfo, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenInfo), args.Error(1)
}

func (m *MockFacebookGraph) DeletePost(ctx context.Context, facebookPostID, accessToken string) error {
	args := m.Called(ctx, facebookPostID, accessToken)
	return args.Error(0)
}

func (m *MockFacebookGraph) PageInsights(ctx context.Context, pageID, accessToken string) (map[string]int64, error) {
	args := m.Called(ctx, pageID, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockPostingLogRepository struct {
	mock.Mock
}

func (m *MockPostingLogRepository) Append(ctx context.Context, log *model.PostingLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockPostingLogRepository) GetRecent(ctx context.Context, limit int) ([]*model.PostingLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PostingLog), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetFirstPending(ctx context.Context) (*model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) MarkPosted(ctx context.Context, id int64, facebookPostID string) error {
	args := m.Called(ctx, id, facebookPostID)
	return args.Error(0)
}

func (m *MockPostRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	args := m.Called(ctx, id, errorMessage)
	return args.Error(0)
}

func (m *MockPostRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) HasPostedSince(ctx context.Context, since time.Time) (bool, error) {
	args := m.Called(ctx, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockNewsSourceRepository struct {
	mock.Mock
}

func (m *MockNewsSourceRepository) Create(ctx context.Context, source *model.NewsSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockNewsSourceRepository) GetByID(ctx context.Context, id int64) (*model.NewsSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsSource), args.Error(1)
}

func (m *MockNewsSourceRepository) GetAll(ctx context.Context) ([]*model.NewsSource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.NewsSource), args.Error(1)
}

func (m *MockNewsSourceRepository) GetEnabled(ctx context.Context) ([]*model.NewsSource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.NewsSource), args.Error(1)
}

func (m *MockNewsSourceRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}

func (m *MockNewsSourceRepository) RecordFetch(ctx context.Context, id int64, fetchedAt time.Time, articleCount int) error {
	args := m.Called(ctx, id, fetchedAt, articleCount)
	return args.Error(0)
}

func (m *MockNewsSourceRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNewsSourceRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockFeedFetcher struct {
	mock.Mock
}

func (m *MockFeedFetcher) Fetch(ctx context.Context, source *model.NewsSource) ([]*model.Article, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Article), args.Error(1)
}

func (m *MockFeedFetcher) Validate(ctx context.Context, url string) (*model.FeedInfo, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedInfo), args.Error(1)
}

type MockArticleCache struct {
	mock.Mock
}

func (m *MockArticleCache) Seen(ctx context.Context, hash string) (bool, error) {
	args := m.Called(ctx, hash)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleCache) MarkSeen(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Complete(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, apiKey, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}
