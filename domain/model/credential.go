package model

import "time"

// PageCredential stores the long-lived Facebook page access token for one
// managed page, together with the app identity needed to renew it.
type PageCredential struct {
	ID               int64      `json:"id"`
	PageID           string     `json:"page_id"`
	PageName         *string    `json:"page_name,omitempty"`
	AccessToken      string     `json:"-"`
	AppID            string     `json:"-"`
	AppSecret        string     `json:"-"`
	IssuedAt         *time.Time `json:"issued_at,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	LastRenewedAt    *time.Time `json:"last_renewed_at,omitempty"`
	AutoRenewEnabled bool       `json:"auto_renew_enabled"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasExchangeCredentials reports whether the record carries everything a
// token exchange call needs.
func (c *PageCredential) HasExchangeCredentials() bool {
	return c.AccessToken != "" && c.AppID != "" && c.AppSecret != ""
}

// DaysUntilExpiry returns the number of whole days until the token expires.
// The second return value is false when no expiry is tracked.
func (c *PageCredential) DaysUntilExpiry(now time.Time) (int, bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return int(c.ExpiresAt.Sub(now).Hours() / 24), true
}
