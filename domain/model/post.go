package model

import "time"

// Post status values.
const (
	PostStatusPending = "pending"
	PostStatusPosted  = "posted"
	PostStatusFailed  = "failed"
	PostStatusSkipped = "skipped"
)

// Post is a news article prepared for publishing to the Facebook page.
type Post struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	URL            *string    `json:"url,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty"`
	FacebookPostID *string    `json:"facebook_post_id,omitempty"`
	Status         string     `json:"status"`
	Source         *string    `json:"source,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	PostedAt       *time.Time `json:"posted_at,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
}
