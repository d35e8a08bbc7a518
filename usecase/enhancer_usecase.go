package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"trucking-news/domain/model"
	"trucking-news/domain/repository"
	"trucking-news/infrastructure/logger"
)

const enhanceSystemPrompt = "You are a social media expert specializing in the trucking and logistics industry. " +
	"Create engaging, professional Facebook posts that will resonate with truckers, fleet owners, and logistics professionals."

const generateSystemPrompt = "You are a social media expert for the trucking industry. " +
	"Create engaging content that resonates with trucking professionals."

const maxPromptContentLength = 1000

var (
	urlPattern     = regexp.MustCompile(`https?://[^\s]+`)
	hashtagPattern = regexp.MustCompile(`#\w+`)
)

// IEnhancerUsecase rewrites article content into engaging Facebook posts
// using the configured language model.
type IEnhancerUsecase interface {
	EnhanceArticle(ctx context.Context, apiKey string, article *model.Article) (string, error)
	GenerateCustomPost(ctx context.Context, apiKey, topic, style string) (string, error)
	TestConnection(ctx context.Context, apiKey string) (string, error)
}

type enhancerUsecase struct {
	completer repository.IChatCompleter
}

func NewEnhancerUsecase(completer repository.IChatCompleter) IEnhancerUsecase {
	return &enhancerUsecase{completer: completer}
}

// EnhanceArticle asks the model for an engaging rewrite, then appends the
// article URL, hashtags and source attribution. Callers fall back to
// FormatBasicPost when this fails.
func (u *enhancerUsecase) EnhanceArticle(ctx context.Context, apiKey string, article *model.Article) (string, error) {
	content := article.Content
	if content == "" {
		content = article.Summary
	}
	if len(content) > maxPromptContentLength {
		content = content[:maxPromptContentLength] + "..."
	}

	prompt := fmt.Sprintf(`Create an engaging Facebook post for the trucking industry based on this news article:

Title: %s
Content: %s
Source: %s

Requirements:
1. Make it engaging and relevant to truckers, fleet owners, and logistics professionals
2. Use appropriate emojis (but don't overdo it)
3. Include a compelling hook in the first line
4. Keep it under 280 characters for the main text (excluding URL and hashtags)
5. Make it professional but conversational
6. Highlight the key impact or takeaway for the trucking community
7. Use industry-relevant language that resonates with trucking professionals
8. Don't include URL or hashtags - I'll add those separately

Focus on why this matters to the trucking community and make them want to engage with the post.`,
		article.Title, content, article.Source)

	enhanced, err := u.completer.Complete(ctx, apiKey, enhanceSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	logger.GetLogger().WithField("title", article.Title).Info("Enhanced post content")
	return finalizePost(enhanced, article.URL, article.Source), nil
}

// GenerateCustomPost creates a standalone post about a topic in one of the
// supported styles.
func (u *enhancerUsecase) GenerateCustomPost(ctx context.Context, apiKey, topic, style string) (string, error) {
	styleInstructions := map[string]string{
		model.StyleInformative:     "Create an informative and educational post",
		model.StyleMotivational:    "Create a motivational and inspiring post",
		model.StyleQuestion:        "Create an engaging post that asks a question to encourage discussion",
		model.StyleTip:             "Create a helpful tip or advice post",
		model.StyleIndustryInsight: "Create a post sharing industry insights or trends",
	}
	instruction, ok := styleInstructions[style]
	if !ok {
		instruction = styleInstructions[model.StyleInformative]
	}

	prompt := fmt.Sprintf(`%s about %s for the trucking and logistics industry.

Requirements:
1. Keep it engaging and relevant to truckers, fleet owners, and logistics professionals
2. Use appropriate emojis sparingly
3. Keep it under 250 characters
4. Make it professional but conversational
5. Encourage engagement if appropriate
6. Don't include hashtags - I'll add those

Topic: %s`, instruction, topic, topic)

	content, err := u.completer.Complete(ctx, apiKey, generateSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return content + "\n\n" + relevantHashtags(content+" "+topic), nil
}

// TestConnection verifies that the API key works with a tiny completion.
func (u *enhancerUsecase) TestConnection(ctx context.Context, apiKey string) (string, error) {
	return u.completer.Complete(ctx, apiKey, "",
		"Say 'OpenAI connection successful' if you can read this.")
}

// finalizePost strips any URLs or hashtags the model added, then appends the
// real URL, generated hashtags and source line.
func finalizePost(enhanced, url, source string) string {
	enhanced = urlPattern.ReplaceAllString(enhanced, "")
	enhanced = hashtagPattern.ReplaceAllString(enhanced, "")
	enhanced = strings.TrimSpace(enhanced)

	var b strings.Builder
	b.WriteString(enhanced)
	b.WriteString("\n\n")
	if url != "" {
		fmt.Fprintf(&b, "Read more: %s\n\n", url)
	}
	b.WriteString(relevantHashtags(enhanced))
	if source != "" {
		fmt.Fprintf(&b, "\n\nSource: %s", source)
	}
	return b.String()
}

// relevantHashtags builds a hashtag line from the base set plus tags matching
// the content, capped at 8 to avoid looking like spam.
func relevantHashtags(content string) string {
	tags := []string{"#TruckingNews", "#Logistics", "#Transportation", "#FreightNews"}
	lower := strings.ToLower(content)

	conditional := []struct {
		words []string
		tag   string
	}{
		{[]string{"driver", "drivers"}, "#TruckDrivers"},
		{[]string{"fleet", "fleets"}, "#FleetManagement"},
		{[]string{"safety", "accident", "regulation"}, "#TruckingSafety"},
		{[]string{"fuel", "diesel", "gas"}, "#FuelPrices"},
		{[]string{"technology", "tech", "digital", "app"}, "#TruckingTech"},
		{[]string{"supply chain", "shipping", "cargo"}, "#SupplyChain"},
		{[]string{"electric", "ev", "green", "sustainable"}, "#ElectricTrucks"},
	}
	for _, c := range conditional {
		for _, w := range c.words {
			if strings.Contains(lower, w) {
				tags = append(tags, c.tag)
				break
			}
		}
	}
	if len(tags) > 8 {
		tags = tags[:8]
	}
	return strings.Join(tags, " ")
}

// FormatBasicPost is the non-AI fallback formatting used when enhancement is
// disabled or failing.
func FormatBasicPost(article *model.Article) string {
	content := article.Content
	if content == "" {
		content = article.Summary
	}
	content = strings.Join(strings.Fields(content), " ")
	if len(content) > 400 {
		content = content[:400] + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚛 %s\n\n", article.Title)
	if content != "" && content != article.Title {
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	if article.URL != "" {
		fmt.Fprintf(&b, "Read more: %s\n\n", article.URL)
	}
	b.WriteString("#TruckingNews #Logistics #Transportation #USATrucking #FreightNews")
	if article.Source != "" {
		fmt.Fprintf(&b, "\n\nSource: %s", article.Source)
	}
	return b.String()
}
