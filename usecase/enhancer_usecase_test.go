package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trucking-news/domain/model"
	"trucking-news/usecase"
)

func TestEnhanceArticle_AppendsURLAndHashtags(t *testing.T) {
	completer := new(MockChatCompleter)
	completer.On("Complete", mock.Anything, "test-key", mock.Anything, mock.Anything).
		Return("Big changes ahead for fleet operators! New diesel rules take effect.", nil)

	uc := usecase.NewEnhancerUsecase(completer)
	article := &model.Article{
		Title:   "New Diesel Rules",
		Content: "Details about the rules",
		URL:     "https://example.com/article",
		Source:  "Transport Topics",
	}
	post, err := uc.EnhanceArticle(context.Background(), "test-key", article)
	require.NoError(t, err)

	assert.Contains(t, post, "Read more: https://example.com/article")
	assert.Contains(t, post, "#TruckingNews")
	assert.Contains(t, post, "#FleetManagement")
	assert.Contains(t, post, "#FuelPrices")
	assert.Contains(t, post, "Source: Transport Topics")
}

func TestEnhanceArticle_StripsModelURLsAndHashtags(t *testing.T) {
	completer := new(MockChatCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("Check this out https://spam.example #Trucking #Spam", nil)

	uc := usecase.NewEnhancerUsecase(completer)
	article := &model.Article{Title: "T", Content: "C", URL: "https://real.example/a", Source: "S"}
	post, err := uc.EnhanceArticle(context.Background(), "key", article)
	require.NoError(t, err)

	assert.NotContains(t, post, "spam.example")
	assert.NotContains(t, post, "#Spam")
	assert.Contains(t, post, "Read more: https://real.example/a")
}

func TestEnhanceArticle_PropagatesError(t *testing.T) {
	completer := new(MockChatCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("rate limited"))

	uc := usecase.NewEnhancerUsecase(completer)
	_, err := uc.EnhanceArticle(context.Background(), "key", &model.Article{Title: "T"})
	require.Error(t, err)
}

func TestGenerateCustomPost_UnknownStyleFallsBack(t *testing.T) {
	completer := new(MockChatCompleter)
	completer.On("Complete", mock.Anything, "key", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "informative and educational")
	})).Return("Generated content about fuel costs", nil)

	uc := usecase.NewEnhancerUsecase(completer)
	post, err := uc.GenerateCustomPost(context.Background(), "key", "fuel costs", "no-such-style")
	require.NoError(t, err)
	assert.Contains(t, post, "Generated content about fuel costs")
	assert.Contains(t, post, "#FuelPrices")
	completer.AssertExpectations(t)
}

func TestFormatBasicPost(t *testing.T) {
	article := &model.Article{
		Title:   "Freight Rates Climb",
		Summary: "Spot rates rose again this week.",
		URL:     "https://example.com/rates",
		Source:  "Fleet Owner",
	}
	post := usecase.FormatBasicPost(article)

	assert.True(t, strings.HasPrefix(post, "🚛 Freight Rates Climb"))
	assert.Contains(t, post, "Spot rates rose again this week.")
	assert.Contains(t, post, "Read more: https://example.com/rates")
	assert.Contains(t, post, "#TruckingNews")
	assert.Contains(t, post, "Source: Fleet Owner")
}

func TestFormatBasicPost_TruncatesLongContent(t *testing.T) {
	article := &model.Article{
		Title:   "Long Story",
		Content: strings.Repeat("word ", 200),
	}
	post := usecase.FormatBasicPost(article)
	assert.Contains(t, post, "...")
}
