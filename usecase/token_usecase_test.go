package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trucking-news/domain/model"
	"trucking-news/usecase"
)

func TestTokenUsecase_CheckAndRenew_NotDue(t *testing.T) {
	creds := new(MockPageCredentialRepository)
	graph := new(MockFacebookGraph)
	logs := new(MockPostingLogRepository)

	now := time.Now().UTC()
	cred := credentialExpiringIn(55, now)
	creds.On("Get", mock.Anything).Return(cred, nil)

	uc := usecase.NewTokenUsecase(creds, graph, logs, 50)
	err := uc.CheckAndRenew(context.Background())
	require.NoError(t, err)

	// Not due: no exchange, no save.
	graph.AssertNotCalled(t, "ExchangePageToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	creds.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTokenUsecase_CheckAndRenew_Due(t *testing.T) {
	creds := new(MockPageCredentialRepository)
	graph := new(MockFacebookGraph)
	logs := new(MockPostingLogRepository)

	now := time.Now().UTC()
	cred := credentialExpiringIn(10, now)
	newExpiry := now.Add(60 * 24 * time.Hour)

	creds.On("Get", mock.Anything).Return(cred, nil)
	graph.On("ExchangePageToken", mock.Anything, "current-token", "app-id", "app-secret", "123456").
		Return("fresh-token", newExpiry, nil).Once()
	creds.On("Save", mock.Anything, mock.MatchedBy(func(c *model.PageCredential) bool {
		return c.AccessToken == "fresh-token" && c.ExpiresAt != nil && c.ExpiresAt.Equal(newExpiry)
	})).Return(nil).Once()
	logs.On("Append", mock.Anything, mock.MatchedBy(func(l *model.PostingLog) bool {
		return l.Action == model.LogActionRenew
	})).Return(nil)

	uc := usecase.NewTokenUsecase(creds, graph, logs, 50)
	err := uc.CheckAndRenew(context.Background())
	require.NoError(t, err)

	graph.AssertExpectations(t)
	creds.AssertExpectations(t)
}

func TestTokenUsecase_CheckAndRenew_ExchangeFails(t *testing.T) {
	creds := new(MockPageCredentialRepository)
	graph := new(MockFacebookGraph)
	logs := new(MockPostingLogRepository)

	now := time.Now().UTC()
	cred := credentialExpiringIn(10, now)

	creds.On("Get", mock.Anything).Return(cred, nil)
	graph.On("ExchangePageToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", time.Time{}, errors.New("graph unavailable")).Once()
	logs.On("Append", mock.Anything, mock.MatchedBy(func(l *model.PostingLog) bool {
		return l.Action == model.LogActionError
	})).Return(nil)

	uc := usecase.NewTokenUsecase(creds, graph, logs, 50)
	err := uc.CheckAndRenew(context.Background())
	require.Error(t, err)

	var exchangeErr *usecase.ExchangeError
	assert.ErrorAs(t, err, &exchangeErr)
	// The stored credential must be left alone on failure.
	creds.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTokenUsecase_Status_Unconfigured(t *testing.T) {
	creds := new(MockPageCredentialRepository)
	graph := new(MockFacebookGraph)
	logs := new(MockPostingLogRepository)

	creds.On("Get", mock.Anything).Return(nil, nil)

	uc := usecase.NewTokenUsecase(creds, graph, logs, 50)
	status, err := uc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Configured)
	assert.False(t, status.RenewalDue)
}

func TestTokenUsecase_Status_Configured(t *testing.T) {
	creds := new(MockPageCredentialRepository)
	graph := new(MockFacebookGraph)
	logs := new(MockPostingLogRepository)

	now := time.Now().UTC()
	cred := credentialExpiringIn(10, now)
	creds.On("Get", mock.Anything).Return(cred, nil)

	uc := usecase.NewTokenUsecase(creds, graph, logs, 50)
	status, err := uc.Status(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Configured)
	assert.Equal(t, "123456", status.PageID)
	assert.True(t, status.RenewalDue)
	require.NotNil(t, status.DaysUntilExpiry)
	assert.InDelta(t, 10, *status.DaysUntilExpiry, 1)
}

func TestTokenUsecase_Setup(t *testing.T) {
	creds := new(MockPageCredentialRepository)
	graph := new(MockFacebookGraph)
	logs := new(MockPostingLogRepository)

	expiry := time.Now().UTC().Add(60 * 24 * time.Hour)
	creds.On("Get", mock.Anything).Return(nil, nil)
	graph.On("VerifyPage", mock.Anything, "123456", "page-token").
		Return(&model.FacebookPage{ID: "123456", Name: "Trucking News Daily"}, nil)
	graph.On("DebugToken", mock.Anything, "page-token").
		Return(&model.TokenInfo{IsValid: true, ExpiresAt: &expiry}, nil)
	creds.On("Save", mock.Anything, mock.MatchedBy(func(c *model.PageCredential) bool {
		return c.PageID == "123456" &&
			c.AccessToken == "page-token" &&
			c.AppID == "app-id" &&
			c.AutoRenewEnabled &&
			c.ExpiresAt != nil && c.ExpiresAt.Equal(expiry) &&
			c.PageName != nil && *c.PageName == "Trucking News Daily"
	})).Return(nil).Once()

	uc := usecase.NewTokenUsecase(creds, graph, logs, 50)
	cred, err := uc.Setup(context.Background(), "123456", "page-token", "app-id", "app-secret", true)
	require.NoError(t, err)
	require.NotNil(t, cred)
	creds.AssertExpectations(t)
}
