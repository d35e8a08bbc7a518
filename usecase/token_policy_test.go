package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trucking-news/domain/model"
	"trucking-news/usecase"
)

// countingExchanger records every exchange call so tests can assert exactly
// how many network attempts a renewal makes.
type countingExchanger struct {
	calls     int
	token     string
	expiresAt time.Time
	err       error
}

func (e *countingExchanger) ExchangePageToken(ctx context.Context, currentToken, appID, appSecret, pageID string) (string, time.Time, error) {
	e.calls++
	if e.err != nil {
		return "", time.Time{}, e.err
	}
	return e.token, e.expiresAt, nil
}

func credentialExpiringIn(days int, now time.Time) *model.PageCredential {
	expires := now.Add(time.Duration(days) * 24 * time.Hour)
	issued := now.Add(-10 * 24 * time.Hour)
	return &model.PageCredential{
		PageID:           "123456",
		AccessToken:      "current-token",
		AppID:            "app-id",
		AppSecret:        "app-secret",
		IssuedAt:         &issued,
		ExpiresAt:        &expires,
		AutoRenewEnabled: true,
	}
}

func TestIsRenewalDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("due at threshold", func(t *testing.T) {
		cred := credentialExpiringIn(50, now)
		assert.True(t, usecase.IsRenewalDue(cred, now, 50))
	})

	t.Run("due below threshold", func(t *testing.T) {
		cred := credentialExpiringIn(5, now)
		assert.True(t, usecase.IsRenewalDue(cred, now, 50))
	})

	t.Run("not due above threshold", func(t *testing.T) {
		cred := credentialExpiringIn(51, now)
		assert.False(t, usecase.IsRenewalDue(cred, now, 50))
	})

	t.Run("expired token is still due", func(t *testing.T) {
		cred := credentialExpiringIn(-3, now)
		assert.True(t, usecase.IsRenewalDue(cred, now, 50))
	})

	t.Run("no tracked expiry counts as due", func(t *testing.T) {
		cred := credentialExpiringIn(10, now)
		cred.ExpiresAt = nil
		assert.True(t, usecase.IsRenewalDue(cred, now, 50))
	})

	t.Run("auto renew disabled is never due", func(t *testing.T) {
		cred := credentialExpiringIn(-3, now)
		cred.AutoRenewEnabled = false
		assert.False(t, usecase.IsRenewalDue(cred, now, 50))
	})

	t.Run("missing token is never due", func(t *testing.T) {
		cred := credentialExpiringIn(5, now)
		cred.AccessToken = ""
		assert.False(t, usecase.IsRenewalDue(cred, now, 50))
	})

	t.Run("nil credential is never due", func(t *testing.T) {
		assert.False(t, usecase.IsRenewalDue(nil, now, 50))
	})

	t.Run("fractional days round down", func(t *testing.T) {
		// 50 days and 12 hours left: whole days = 50, due at threshold 50.
		expires := now.Add(50*24*time.Hour + 12*time.Hour)
		cred := credentialExpiringIn(1, now)
		cred.ExpiresAt = &expires
		assert.True(t, usecase.IsRenewalDue(cred, now, 50))
	})
}

func TestRenewCredential_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cred := credentialExpiringIn(5, now)
	originalToken := cred.AccessToken
	originalExpiry := *cred.ExpiresAt

	newExpiry := now.Add(60 * 24 * time.Hour)
	exchanger := &countingExchanger{token: "fresh-token", expiresAt: newExpiry}

	renewed, err := usecase.RenewCredential(context.Background(), cred, exchanger, now)
	require.NoError(t, err)
	require.NotNil(t, renewed)

	assert.Equal(t, 1, exchanger.calls)
	assert.Equal(t, "fresh-token", renewed.AccessToken)
	require.NotNil(t, renewed.ExpiresAt)
	assert.Equal(t, newExpiry, *renewed.ExpiresAt)
	require.NotNil(t, renewed.IssuedAt)
	assert.Equal(t, now, *renewed.IssuedAt)
	require.NotNil(t, renewed.LastRenewedAt)
	assert.Equal(t, now, *renewed.LastRenewedAt)

	// Identity fields carry over unchanged.
	assert.Equal(t, cred.PageID, renewed.PageID)
	assert.Equal(t, cred.AppID, renewed.AppID)
	assert.Equal(t, cred.AppSecret, renewed.AppSecret)

	// The input record is never mutated.
	assert.Equal(t, originalToken, cred.AccessToken)
	assert.Equal(t, originalExpiry, *cred.ExpiresAt)
	assert.Nil(t, cred.LastRenewedAt)
}

func TestRenewCredential_ExchangeFailure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cred := credentialExpiringIn(5, now)
	originalToken := cred.AccessToken

	cause := errors.New("graph api error: invalid token")
	exchanger := &countingExchanger{err: cause}

	renewed, err := usecase.RenewCredential(context.Background(), cred, exchanger, now)
	require.Error(t, err)
	assert.Nil(t, renewed)
	assert.Equal(t, 1, exchanger.calls)

	var exchangeErr *usecase.ExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	assert.Equal(t, "123456", exchangeErr.PageID)
	assert.ErrorIs(t, err, cause)

	// Old token stays usable after a failed renewal.
	assert.Equal(t, originalToken, cred.AccessToken)
}

func TestRenewCredential_MissingCredentials(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(*model.PageCredential)
	}{
		{"no token", func(c *model.PageCredential) { c.AccessToken = "" }},
		{"no app id", func(c *model.PageCredential) { c.AppID = "" }},
		{"no app secret", func(c *model.PageCredential) { c.AppSecret = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cred := credentialExpiringIn(5, now)
			tc.mutate(cred)
			exchanger := &countingExchanger{token: "fresh-token"}

			renewed, err := usecase.RenewCredential(context.Background(), cred, exchanger, now)
			assert.Nil(t, renewed)

			var missingErr *usecase.MissingCredentialsError
			require.ErrorAs(t, err, &missingErr)
			// Precondition failures never reach the network.
			assert.Equal(t, 0, exchanger.calls)
		})
	}

	t.Run("nil credential", func(t *testing.T) {
		exchanger := &countingExchanger{}
		renewed, err := usecase.RenewCredential(context.Background(), nil, exchanger, now)
		assert.Nil(t, renewed)
		var missingErr *usecase.MissingCredentialsError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, 0, exchanger.calls)
	})
}
