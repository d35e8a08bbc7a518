package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trucking-news/domain/model"
	"trucking-news/infrastructure/logger"
)

// DefaultBaseURL is the Graph API endpoint used in production.
const DefaultBaseURL = "https://graph.facebook.com/v19.0"

// Page tokens obtained through fb_exchange_token are valid for about 60
// days. Used as a fallback when the API does not report an expiry.
const defaultTokenLifetime = 60 * 24 * time.Hour

// GraphClient talks to the Facebook Graph API. BaseURL is overridable for
// tests.
type GraphClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewGraphClient(baseURL string) *GraphClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GraphClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type graphErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// PublishPost publishes a pending post to the page feed and returns the
// Facebook post id.
func (c *GraphClient) PublishPost(ctx context.Context, pageID, accessToken string, post *model.Post) (string, error) {
	form := url.Values{}
	form.Set("message", post.Content)
	form.Set("access_token", accessToken)
	if post.URL != nil && *post.URL != "" {
		form.Set("link", *post.URL)
	}
	if post.ImageURL != nil && *post.ImageURL != "" {
		form.Set("picture", *post.ImageURL)
	}

	body, err := c.postForm(ctx, fmt.Sprintf("%s/%s/feed", c.BaseURL, pageID), form)
	if err != nil {
		return "", err
	}
	var res struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("parsing feed response: %w", err)
	}
	if res.ID == "" {
		return "", fmt.Errorf("feed response missing post id")
	}
	return res.ID, nil
}

// VerifyPage checks that the page is reachable with the given token.
func (c *GraphClient) VerifyPage(ctx context.Context, pageID, accessToken string) (*model.FacebookPage, error) {
	q := url.Values{}
	q.Set("fields", "name,id")
	q.Set("access_token", accessToken)
	body, err := c.get(ctx, fmt.Sprintf("%s/%s?%s", c.BaseURL, pageID, q.Encode()))
	if err != nil {
		return nil, err
	}
	var page model.FacebookPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parsing page response: %w", err)
	}
	return &page, nil
}

// DebugToken returns validity and expiry information for a token. The token
// is allowed to debug itself.
func (c *GraphClient) DebugToken(ctx context.Context, accessToken string) (*model.TokenInfo, error) {
	q := url.Values{}
	q.Set("input_token", accessToken)
	q.Set("access_token", accessToken)
	body, err := c.get(ctx, fmt.Sprintf("%s/debug_token?%s", c.BaseURL, q.Encode()))
	if err != nil {
		return nil, err
	}
	var res struct {
		Data struct {
			IsValid   bool     `json:"is_valid"`
			ExpiresAt int64    `json:"expires_at"`
			AppID     string   `json:"app_id"`
			UserID    string   `json:"user_id"`
			Scopes    []string `json:"scopes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parsing debug_token response: %w", err)
	}
	info := &model.TokenInfo{
		IsValid: res.Data.IsValid,
		AppID:   res.Data.AppID,
		UserID:  res.Data.UserID,
		Scopes:  res.Data.Scopes,
	}
	// expires_at == 0 means the token never expires on its own.
	if res.Data.ExpiresAt != 0 {
		t := time.Unix(res.Data.ExpiresAt, 0).UTC()
		info.ExpiresAt = &t
	}
	return info, nil
}

// ExchangePageToken trades the current page token for a fresh one: first a
// long-lived user token exchange, then a page token lookup via /me/accounts.
// Implements the token exchanger used by the renewal policy.
func (c *GraphClient) ExchangePageToken(ctx context.Context, currentToken, appID, appSecret, pageID string) (string, time.Time, error) {
	longLived, expiresIn, err := c.exchangeLongLivedToken(ctx, appID, appSecret, currentToken)
	if err != nil {
		return "", time.Time{}, err
	}

	pages, err := c.listPages(ctx, longLived)
	if err != nil {
		return "", time.Time{}, err
	}
	var pageToken string
	for _, p := range pages {
		if p.ID == pageID {
			pageToken = p.AccessToken
			break
		}
	}
	if pageToken == "" {
		return "", time.Time{}, fmt.Errorf("page %s not found in accessible pages", pageID)
	}

	expiresAt := c.pageTokenExpiry(ctx, pageToken, expiresIn)
	logger.GetLogger().WithField("page_id", pageID).Info("Renewed page access token")
	return pageToken, expiresAt, nil
}

// pageTokenExpiry asks debug_token for the real expiry and falls back to the
// exchange's expires_in, then to the documented ~60 day lifetime.
func (c *GraphClient) pageTokenExpiry(ctx context.Context, pageToken string, expiresIn int64) time.Time {
	if info, err := c.DebugToken(ctx, pageToken); err == nil && info.ExpiresAt != nil {
		return *info.ExpiresAt
	}
	if expiresIn > 0 {
		return time.Now().UTC().Add(time.Duration(expiresIn) * time.Second)
	}
	return time.Now().UTC().Add(defaultTokenLifetime)
}

func (c *GraphClient) exchangeLongLivedToken(ctx context.Context, appID, appSecret, token string) (string, int64, error) {
	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", appID)
	q.Set("client_secret", appSecret)
	q.Set("fb_exchange_token", token)
	body, err := c.get(ctx, fmt.Sprintf("%s/oauth/access_token?%s", c.BaseURL, q.Encode()))
	if err != nil {
		return "", 0, err
	}
	var res struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", 0, fmt.Errorf("parsing token exchange response: %w", err)
	}
	if res.AccessToken == "" {
		return "", 0, fmt.Errorf("no access token in exchange response")
	}
	return res.AccessToken, res.ExpiresIn, nil
}

func (c *GraphClient) listPages(ctx context.Context, userToken string) ([]model.FacebookPage, error) {
	q := url.Values{}
	q.Set("access_token", userToken)
	body, err := c.get(ctx, fmt.Sprintf("%s/me/accounts?%s", c.BaseURL, q.Encode()))
	if err != nil {
		return nil, err
	}
	var res struct {
		Data []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parsing pages response: %w", err)
	}
	pages := make([]model.FacebookPage, 0, len(res.Data))
	for _, d := range res.Data {
		pages = append(pages, model.FacebookPage{ID: d.ID, Name: d.Name, AccessToken: d.AccessToken})
	}
	return pages, nil
}

// DeletePost removes a post from the page feed.
func (c *GraphClient) DeletePost(ctx context.Context, facebookPostID, accessToken string) error {
	q := url.Values{}
	q.Set("access_token", accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/%s?%s", c.BaseURL, facebookPostID, q.Encode()), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// PageInsights returns the latest value for a few basic page metrics.
func (c *GraphClient) PageInsights(ctx context.Context, pageID, accessToken string) (map[string]int64, error) {
	q := url.Values{}
	q.Set("metric", "page_fans,page_impressions")
	q.Set("access_token", accessToken)
	body, err := c.get(ctx, fmt.Sprintf("%s/%s/insights?%s", c.BaseURL, pageID, q.Encode()))
	if err != nil {
		return nil, err
	}
	var res struct {
		Data []struct {
			Name   string `json:"name"`
			Values []struct {
				Value int64 `json:"value"`
			} `json:"values"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parsing insights response: %w", err)
	}
	metrics := map[string]int64{}
	for _, d := range res.Data {
		if len(d.Values) > 0 {
			metrics[d.Name] = d.Values[len(d.Values)-1].Value
		}
	}
	return metrics, nil
}

func (c *GraphClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *GraphClient) postForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *GraphClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var ge graphErrorBody
		if jsonErr := json.Unmarshal(body, &ge); jsonErr == nil && ge.Error.Message != "" {
			return nil, fmt.Errorf("graph api error: %s (type %s, code %d)", ge.Error.Message, ge.Error.Type, ge.Error.Code)
		}
		return nil, fmt.Errorf("graph api error: status %d", resp.StatusCode)
	}
	return body, nil
}
