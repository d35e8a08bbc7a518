package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trucking-news/domain/model"
	"trucking-news/usecase"
)

func newPostingFixture() (*MockPostRepository, *MockSettingsRepository, *MockPostingLogRepository, *MockPageCredentialRepository, *MockFacebookGraph, usecase.IPostingUsecase) {
	posts := new(MockPostRepository)
	settings := new(MockSettingsRepository)
	logs := new(MockPostingLogRepository)
	creds := new(MockPageCredentialRepository)
	graph := new(MockFacebookGraph)
	uc := usecase.NewPostingUsecase(posts, settings, logs, creds, graph, nil)
	return posts, settings, logs, creds, graph, uc
}

func pendingPost(id int64) *model.Post {
	url := fmt.Sprintf("https://example.com/%d", id)
	return &model.Post{ID: id, Title: "Freight news", Content: "content", URL: &url, Status: model.PostStatusPending}
}

func configuredCredential() *model.PageCredential {
	return &model.PageCredential{PageID: "123456", AccessToken: "page-token", AutoRenewEnabled: true}
}

func TestPostNext_PublishesOldestPending(t *testing.T) {
	posts, _, logs, creds, graph, uc := newPostingFixture()

	post := pendingPost(7)
	posts.On("GetFirstPending", mock.Anything).Return(post, nil)
	creds.On("Get", mock.Anything).Return(configuredCredential(), nil)
	graph.On("PublishPost", mock.Anything, "123456", "page-token", post).Return("123456_789", nil).Once()
	posts.On("MarkPosted", mock.Anything, int64(7), "123456_789").Return(nil).Once()
	logs.On("Append", mock.Anything, mock.MatchedBy(func(l *model.PostingLog) bool {
		return l.Action == model.LogActionPost
	})).Return(nil)

	published, err := uc.PostNext(context.Background())
	require.NoError(t, err)
	require.NotNil(t, published)
	assert.Equal(t, model.PostStatusPosted, published.Status)
	require.NotNil(t, published.FacebookPostID)
	assert.Equal(t, "123456_789", *published.FacebookPostID)
	posts.AssertExpectations(t)
}

func TestPostNext_EmptyQueue(t *testing.T) {
	posts, _, _, _, graph, uc := newPostingFixture()
	posts.On("GetFirstPending", mock.Anything).Return(nil, nil)

	published, err := uc.PostNext(context.Background())
	require.NoError(t, err)
	assert.Nil(t, published)
	graph.AssertNotCalled(t, "PublishPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostNext_PublishFailureMarksFailed(t *testing.T) {
	posts, _, logs, creds, graph, uc := newPostingFixture()

	post := pendingPost(3)
	posts.On("GetFirstPending", mock.Anything).Return(post, nil)
	creds.On("Get", mock.Anything).Return(configuredCredential(), nil)
	graph.On("PublishPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("graph api error: token expired")).Once()
	posts.On("MarkFailed", mock.Anything, int64(3), mock.Anything).Return(nil).Once()
	logs.On("Append", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.PostNext(context.Background())
	require.Error(t, err)
	posts.AssertExpectations(t)
}

func TestPostNext_UnconfiguredPage(t *testing.T) {
	posts, _, logs, creds, _, uc := newPostingFixture()

	posts.On("GetFirstPending", mock.Anything).Return(pendingPost(1), nil)
	creds.On("Get", mock.Anything).Return(nil, nil)
	logs.On("Append", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.PostNext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPostByID_RejectsNonPending(t *testing.T) {
	posts, _, _, _, _, uc := newPostingFixture()

	posted := pendingPost(5)
	posted.Status = model.PostStatusPosted
	posts.On("GetByID", mock.Anything, int64(5)).Return(posted, nil)

	_, err := uc.PostByID(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only pending")
}

func TestRunScheduled_PostsInsideWindow(t *testing.T) {
	posts, settings, logs, creds, graph, uc := newPostingFixture()

	hour := time.Now().UTC().Hour()
	settings.On("Get", mock.Anything).Return(&model.Settings{
		Enabled:      true,
		PostingHours: fmt.Sprintf("%d", hour),
	}, nil)
	posts.On("HasPostedSince", mock.Anything, mock.Anything).Return(false, nil)
	post := pendingPost(9)
	posts.On("GetFirstPending", mock.Anything).Return(post, nil)
	creds.On("Get", mock.Anything).Return(configuredCredential(), nil)
	graph.On("PublishPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("fb-id", nil).Once()
	posts.On("MarkPosted", mock.Anything, int64(9), "fb-id").Return(nil)
	logs.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, uc.RunScheduled(context.Background()))
	graph.AssertExpectations(t)
}

func TestRunScheduled_OutsideWindow(t *testing.T) {
	posts, settings, _, _, graph, uc := newPostingFixture()

	otherHour := (time.Now().UTC().Hour() + 3) % 24
	settings.On("Get", mock.Anything).Return(&model.Settings{
		Enabled:      true,
		PostingHours: fmt.Sprintf("%d", otherHour),
	}, nil)

	require.NoError(t, uc.RunScheduled(context.Background()))
	posts.AssertNotCalled(t, "GetFirstPending", mock.Anything)
	graph.AssertNotCalled(t, "PublishPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunScheduled_AlreadyPostedThisHour(t *testing.T) {
	posts, settings, _, _, graph, uc := newPostingFixture()

	hour := time.Now().UTC().Hour()
	settings.On("Get", mock.Anything).Return(&model.Settings{
		Enabled:      true,
		PostingHours: fmt.Sprintf("%d", hour),
	}, nil)
	posts.On("HasPostedSince", mock.Anything, mock.Anything).Return(true, nil)

	require.NoError(t, uc.RunScheduled(context.Background()))
	posts.AssertNotCalled(t, "GetFirstPending", mock.Anything)
	graph.AssertNotCalled(t, "PublishPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunScheduled_RefillsEmptyQueue(t *testing.T) {
	posts, settings, logs, creds, graph, uc := newPostingFixture()

	hour := time.Now().UTC().Hour()
	settings.On("Get", mock.Anything).Return(&model.Settings{
		Enabled:      true,
		PostingHours: fmt.Sprintf("%d", hour),
	}, nil)
	posts.On("HasPostedSince", mock.Anything, mock.Anything).Return(false, nil)
	posts.On("GetFirstPending", mock.Anything).Return(nil, nil).Once()

	fetched := pendingPost(11)
	refillCalls := 0
	uc = uc.WithRefill(func(ctx context.Context) (int, error) {
		refillCalls++
		posts.On("GetFirstPending", mock.Anything).Return(fetched, nil).Once()
		return 1, nil
	})

	creds.On("Get", mock.Anything).Return(configuredCredential(), nil)
	graph.On("PublishPost", mock.Anything, mock.Anything, mock.Anything, fetched).Return("fb-id", nil).Once()
	posts.On("MarkPosted", mock.Anything, int64(11), "fb-id").Return(nil)
	logs.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, uc.RunScheduled(context.Background()))
	assert.Equal(t, 1, refillCalls)
	graph.AssertExpectations(t)
}

func TestRunScheduled_Disabled(t *testing.T) {
	posts, settings, _, _, _, uc := newPostingFixture()
	settings.On("Get", mock.Anything).Return(&model.Settings{Enabled: false, PostingHours: "0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23"}, nil)

	require.NoError(t, uc.RunScheduled(context.Background()))
	posts.AssertNotCalled(t, "GetFirstPending", mock.Anything)
}

func TestCleanup(t *testing.T) {
	posts, _, logs, _, _, uc := newPostingFixture()
	posts.On("DeleteOlderThan", mock.Anything, 30).Return(int64(12), nil)
	logs.On("Append", mock.Anything, mock.Anything).Return(nil)

	deleted, err := uc.Cleanup(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
}

func TestStats(t *testing.T) {
	posts, _, _, _, _, uc := newPostingFixture()
	posts.On("CountByStatus", mock.Anything, model.PostStatusPending).Return(4, nil)
	posts.On("CountByStatus", mock.Anything, model.PostStatusPosted).Return(10, nil)
	posts.On("CountByStatus", mock.Anything, model.PostStatusFailed).Return(1, nil)
	posts.On("CountByStatus", mock.Anything, model.PostStatusSkipped).Return(0, nil)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats[model.PostStatusPending])
	assert.Equal(t, 10, stats[model.PostStatusPosted])
}
