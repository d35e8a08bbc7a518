package usecase

import (
	"context"
	"fmt"
	"time"

	"trucking-news/domain/model"
	"trucking-news/domain/repository"
)

// DefaultRenewalThresholdDays leaves a comfortable margin before the ~60 day
// page token lifetime runs out.
const DefaultRenewalThresholdDays = 50

// MissingCredentialsError means a renewal was requested on a record that
// does not carry everything the exchange needs. No network call was made.
type MissingCredentialsError struct {
	PageID string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("page %s: token, app id and app secret are required for renewal", e.PageID)
}

// ExchangeError wraps a failed token exchange. The stored credential is
// untouched when this is returned.
type ExchangeError struct {
	PageID string
	Err    error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange for page %s failed: %v", e.PageID, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// IsRenewalDue reports whether the credential's token should be renewed now.
// A token with no tracked expiry counts as due: better to refresh than to
// guess. Disabled auto-renewal or a missing token is never due.
func IsRenewalDue(cred *model.PageCredential, now time.Time, thresholdDays int) bool {
	if cred == nil || !cred.AutoRenewEnabled || cred.AccessToken == "" {
		return false
	}
	days, ok := cred.DaysUntilExpiry(now)
	if !ok {
		return true
	}
	return days <= thresholdDays
}

// RenewCredential exchanges the credential's token for a fresh one and
// returns a new record with the token window replaced. The input record is
// never mutated; on any error the caller keeps using it as-is. Exactly one
// exchange attempt is made per call, retrying is left to the next scheduled
// check.
func RenewCredential(ctx context.Context, cred *model.PageCredential, exchanger repository.ITokenExchanger, now time.Time) (*model.PageCredential, error) {
	if cred == nil || !cred.HasExchangeCredentials() {
		pageID := ""
		if cred != nil {
			pageID = cred.PageID
		}
		return nil, &MissingCredentialsError{PageID: pageID}
	}

	newToken, expiresAt, err := exchanger.ExchangePageToken(ctx, cred.AccessToken, cred.AppID, cred.AppSecret, cred.PageID)
	if err != nil {
		return nil, &ExchangeError{PageID: cred.PageID, Err: err}
	}

	renewed := *cred
	renewed.AccessToken = newToken
	issuedAt := now
	renewed.IssuedAt = &issuedAt
	renewed.ExpiresAt = &expiresAt
	lastRenewed := now
	renewed.LastRenewedAt = &lastRenewed
	renewed.UpdatedAt = now
	return &renewed, nil
}
