package model

import "time"

// Posting log actions.
const (
	LogActionFetch     = "fetch"
	LogActionPost      = "post"
	LogActionError     = "error"
	LogActionSkip      = "skip"
	LogActionAIEnhance = "ai_enhance"
	LogActionAIError   = "ai_error"
	LogActionRenew     = "renew"
	LogActionCleanup   = "cleanup"
)

// PostingLog is an append-only record of fetch/post/renew activity.
type PostingLog struct {
	ID        int64     `json:"id"`
	PostID    *int64    `json:"post_id,omitempty"`
	Action    string    `json:"action"`
	Message   *string   `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
