package model

import "time"

// FacebookPage describes a page reachable with a token.
type FacebookPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"-"`
}

// TokenInfo is the result of a Graph API debug_token call.
type TokenInfo struct {
	IsValid   bool       `json:"is_valid"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	AppID     string     `json:"app_id,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	Scopes    []string   `json:"scopes,omitempty"`
}

// FeedInfo summarizes a validated RSS feed.
type FeedInfo struct {
	Title      string `json:"title"`
	EntryCount int    `json:"entry_count"`
}
