package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trucking-news/domain/model"
	"trucking-news/domain/repository"
	"trucking-news/infrastructure/logger"
)

// TokenStatus is the dashboard view of the page credential.
type TokenStatus struct {
	Configured       bool       `json:"configured"`
	PageID           string     `json:"page_id,omitempty"`
	PageName         *string    `json:"page_name,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	DaysUntilExpiry  *int       `json:"days_until_expiry,omitempty"`
	LastRenewedAt    *time.Time `json:"last_renewed_at,omitempty"`
	AutoRenewEnabled bool       `json:"auto_renew_enabled"`
	RenewalDue       bool       `json:"renewal_due"`
}

// ITokenUsecase manages the page credential and its renewal lifecycle.
type ITokenUsecase interface {
	Status(ctx context.Context) (*TokenStatus, error)
	Setup(ctx context.Context, pageID, accessToken, appID, appSecret string, autoRenew bool) (*model.PageCredential, error)
	VerifyPage(ctx context.Context, pageID, accessToken string) (*model.FacebookPage, error)
	RenewNow(ctx context.Context) (*model.PageCredential, error)
	CheckAndRenew(ctx context.Context) error
	Credential(ctx context.Context) (*model.PageCredential, error)
}

type tokenUsecase struct {
	creds         repository.IPageCredential
	graph         repository.IFacebookGraph
	logs          repository.IPostingLog
	thresholdDays int

	// Serializes renewal so concurrent triggers (scheduler + dashboard
	// button) cannot both call the exchange.
	renewMu sync.Mutex
}

func NewTokenUsecase(creds repository.IPageCredential, graph repository.IFacebookGraph, logs repository.IPostingLog, thresholdDays int) ITokenUsecase {
	if thresholdDays <= 0 {
		thresholdDays = DefaultRenewalThresholdDays
	}
	return &tokenUsecase{creds: creds, graph: graph, logs: logs, thresholdDays: thresholdDays}
}

func (u *tokenUsecase) Credential(ctx context.Context) (*model.PageCredential, error) {
	return u.creds.Get(ctx)
}

// Status summarizes the stored credential without exposing the token itself.
func (u *tokenUsecase) Status(ctx context.Context) (*TokenStatus, error) {
	cred, err := u.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return &TokenStatus{Configured: false}, nil
	}
	now := time.Now().UTC()
	status := &TokenStatus{
		Configured:       cred.AccessToken != "",
		PageID:           cred.PageID,
		PageName:         cred.PageName,
		ExpiresAt:        cred.ExpiresAt,
		LastRenewedAt:    cred.LastRenewedAt,
		AutoRenewEnabled: cred.AutoRenewEnabled,
		RenewalDue:       IsRenewalDue(cred, now, u.thresholdDays),
	}
	if days, ok := cred.DaysUntilExpiry(now); ok {
		status.DaysUntilExpiry = &days
	}
	return status, nil
}

// Setup stores a manually supplied page token. Expiry is read from
// debug_token when possible so the renewal schedule starts from real data.
func (u *tokenUsecase) Setup(ctx context.Context, pageID, accessToken, appID, appSecret string, autoRenew bool) (*model.PageCredential, error) {
	now := time.Now().UTC()
	cred, err := u.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		cred = &model.PageCredential{CreatedAt: now}
	}
	cred.PageID = pageID
	cred.AccessToken = accessToken
	if appID != "" {
		cred.AppID = appID
	}
	if appSecret != "" {
		cred.AppSecret = appSecret
	}
	cred.AutoRenewEnabled = autoRenew
	cred.IssuedAt = &now
	cred.ExpiresAt = nil
	cred.UpdatedAt = now

	if page, err := u.graph.VerifyPage(ctx, pageID, accessToken); err == nil {
		cred.PageName = &page.Name
	} else {
		logger.GetLogger().WithField("page_id", pageID).Warnf("Page verification failed: %v", err)
	}
	if info, err := u.graph.DebugToken(ctx, accessToken); err == nil {
		cred.ExpiresAt = info.ExpiresAt
	} else {
		logger.GetLogger().Warnf("debug_token failed, expiry unknown: %v", err)
	}

	if err := u.creds.Save(ctx, cred); err != nil {
		return nil, err
	}
	return cred, nil
}

func (u *tokenUsecase) VerifyPage(ctx context.Context, pageID, accessToken string) (*model.FacebookPage, error) {
	return u.graph.VerifyPage(ctx, pageID, accessToken)
}

// RenewNow renews the token immediately regardless of how close the expiry
// is. Used by the dashboard's renew button.
func (u *tokenUsecase) RenewNow(ctx context.Context) (*model.PageCredential, error) {
	u.renewMu.Lock()
	defer u.renewMu.Unlock()

	cred, err := u.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	return u.renewLocked(ctx, cred)
}

// CheckAndRenew is the scheduled entry point: renew only when the policy
// says the token is due.
func (u *tokenUsecase) CheckAndRenew(ctx context.Context) error {
	u.renewMu.Lock()
	defer u.renewMu.Unlock()

	cred, err := u.creds.Get(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if !IsRenewalDue(cred, now, u.thresholdDays) {
		if cred != nil {
			if days, ok := cred.DaysUntilExpiry(now); ok {
				logger.GetLogger().WithField("days_until_expiry", days).Debug("Token renewal not due")
			}
		}
		return nil
	}
	_, err = u.renewLocked(ctx, cred)
	return err
}

func (u *tokenUsecase) renewLocked(ctx context.Context, cred *model.PageCredential) (*model.PageCredential, error) {
	log := logger.GetLogger()
	renewed, err := RenewCredential(ctx, cred, u.graph, time.Now().UTC())
	if err != nil {
		log.WithField("error", err).Error("Token renewal failed")
		u.appendLog(ctx, model.LogActionError, fmt.Sprintf("Token renewal failed: %v", err))
		return nil, err
	}
	if err := u.creds.Save(ctx, renewed); err != nil {
		log.WithField("error", err).Error("Persisting renewed token failed")
		return nil, err
	}
	msg := fmt.Sprintf("Access token renewed for page %s", renewed.PageID)
	if renewed.ExpiresAt != nil {
		msg = fmt.Sprintf("%s, valid until %s", msg, renewed.ExpiresAt.Format("2006-01-02"))
	}
	log.WithField("page_id", renewed.PageID).Info("Access token renewed")
	u.appendLog(ctx, model.LogActionRenew, msg)
	return renewed, nil
}

func (u *tokenUsecase) appendLog(ctx context.Context, action, message string) {
	entry := &model.PostingLog{Action: action, Message: &message, Timestamp: time.Now().UTC()}
	if err := u.logs.Append(ctx, entry); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Appending posting log failed")
	}
}
