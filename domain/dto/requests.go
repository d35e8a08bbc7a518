package dto

// SettingsUpdateRequest updates the singleton settings row.
type SettingsUpdateRequest struct {
	PostsPerDay          int    `json:"posts_per_day"`
	PostingHours         string `json:"posting_hours"`
	Enabled              bool   `json:"enabled"`
	OpenAIAPIKey         string `json:"openai_api_key"`
	AIEnhancementEnabled bool   `json:"ai_enhancement_enabled"`
	AIPostStyle          string `json:"ai_post_style"`
}

// SourceCreateRequest registers a news source.
type SourceCreateRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
	Type string `json:"type"`
}

// SourceValidateRequest validates a feed URL without saving it.
type SourceValidateRequest struct {
	URL string `json:"url" binding:"required"`
}

// TokenSetupRequest configures page credentials manually.
type TokenSetupRequest struct {
	PageID      string `json:"page_id" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
	AppID       string `json:"app_id"`
	AppSecret   string `json:"app_secret"`
	AutoRenew   *bool  `json:"auto_renew"`
}

// VerifyPageRequest checks that a page is reachable with a token.
type VerifyPageRequest struct {
	PageID      string `json:"page_id" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
}

// EnhanceRequest rewrites existing article content with the AI enhancer.
type EnhanceRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
	Source  string `json:"source"`
}

// GenerateRequest asks the AI enhancer for a post from scratch.
type GenerateRequest struct {
	Topic string `json:"topic" binding:"required"`
	Style string `json:"style"`
}

// AITestRequest checks connectivity with a candidate API key.
type AITestRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}
