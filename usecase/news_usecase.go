package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"trucking-news/domain/model"
	"trucking-news/domain/repository"
	"trucking-news/infrastructure/logger"
)

// truckingKeywords decides whether a fetched article is relevant enough to
// post. Matching is case-insensitive over title plus summary.
var truckingKeywords = []string{
	"truck", "trucking", "freight", "logistics", "transport", "transportation",
	"semi", "diesel", "cdl", "driver", "fleet", "cargo", "shipping", "haul",
	"supply chain", "fmcsa", "dot", "eld", "owner-operator",
}

// Secondary match: articles that only talk about deliveries or shipments
// still qualify when they are clearly about the US market.
var (
	usaIndicators  = []string{"usa", "united states", "america", "us ", "federal"}
	transportTerms = []string{"transport", "deliver", "ship", "cargo", "fleet", "driver"}
)

// INewsUsecase runs the article pipeline: fetch feeds, filter, dedupe,
// format, store as pending posts.
type INewsUsecase interface {
	FetchAll(ctx context.Context) (int, error)
	FetchSource(ctx context.Context, id int64) (int, error)
	ValidateFeed(ctx context.Context, url string) (*model.FeedInfo, error)
	EnsureDefaultSources(ctx context.Context) error
}

type newsUsecase struct {
	sources  repository.INewsSource
	posts    repository.IPost
	settings repository.ISettings
	logs     repository.IPostingLog
	fetcher  repository.IFeedFetcher
	cache    repository.IArticleCache
	enhancer IEnhancerUsecase
}

func NewNewsUsecase(
	sources repository.INewsSource,
	posts repository.IPost,
	settings repository.ISettings,
	logs repository.IPostingLog,
	fetcher repository.IFeedFetcher,
	cache repository.IArticleCache,
	enhancer IEnhancerUsecase,
) INewsUsecase {
	return &newsUsecase{
		sources:  sources,
		posts:    posts,
		settings: settings,
		logs:     logs,
		fetcher:  fetcher,
		cache:    cache,
		enhancer: enhancer,
	}
}

// FetchAll pulls every enabled source and returns the number of new posts
// saved. A failing source is logged and skipped, the rest still run.
func (u *newsUsecase) FetchAll(ctx context.Context) (int, error) {
	log := logger.GetLogger()
	sources, err := u.sources.GetEnabled(ctx)
	if err != nil {
		return 0, err
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, source := range sources {
		saved, err := u.fetchOne(ctx, source, settings)
		if err != nil {
			log.WithField("source", source.Name).Errorf("Fetching source failed: %v", err)
			u.appendLog(ctx, model.LogActionError, fmt.Sprintf("Fetch from %s failed: %v", source.Name, err))
			continue
		}
		total += saved
	}
	if total > 0 {
		u.appendLog(ctx, model.LogActionFetch, fmt.Sprintf("Fetched %d new articles", total))
	}
	log.WithField("new_posts", total).Info("Fetch cycle finished")
	return total, nil
}

// FetchSource fetches a single source on demand, e.g. from the dashboard's
// test button.
func (u *newsUsecase) FetchSource(ctx context.Context, id int64) (int, error) {
	source, err := u.sources.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if source == nil {
		return 0, fmt.Errorf("news source %d not found", id)
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	return u.fetchOne(ctx, source, settings)
}

func (u *newsUsecase) ValidateFeed(ctx context.Context, url string) (*model.FeedInfo, error) {
	return u.fetcher.Validate(ctx, url)
}

func (u *newsUsecase) fetchOne(ctx context.Context, source *model.NewsSource, settings *model.Settings) (int, error) {
	log := logger.GetLogger()
	articles, err := u.fetcher.Fetch(ctx, source)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, article := range articles {
		if !IsTruckingRelated(article) {
			continue
		}
		dup, err := u.isDuplicate(ctx, article)
		if err != nil {
			return saved, err
		}
		if dup {
			continue
		}
		if err := u.saveArticle(ctx, article, settings); err != nil {
			log.WithField("title", article.Title).Errorf("Saving article failed: %v", err)
			continue
		}
		saved++
	}
	if err := u.sources.RecordFetch(ctx, source.ID, time.Now().UTC(), saved); err != nil {
		log.WithField("source", source.Name).Warnf("Recording fetch failed: %v", err)
	}
	return saved, nil
}

// isDuplicate checks the fast cache first, then the posts table. The cache
// entry is written either way so the next fetch skips the DB lookup.
func (u *newsUsecase) isDuplicate(ctx context.Context, article *model.Article) (bool, error) {
	hash := ArticleHash(article)
	if seen, err := u.cache.Seen(ctx, hash); err == nil && seen {
		return true, nil
	}
	exists, err := u.posts.ExistsByTitle(ctx, article.Title)
	if err != nil {
		return false, err
	}
	if err := u.cache.MarkSeen(ctx, hash); err != nil {
		logger.GetLogger().Debugf("Marking article seen failed: %v", err)
	}
	return exists, nil
}

func (u *newsUsecase) saveArticle(ctx context.Context, article *model.Article, settings *model.Settings) error {
	content := ""
	if settings.AIEnhancementEnabled && settings.OpenAIAPIKey != "" {
		enhanced, err := u.enhancer.EnhanceArticle(ctx, settings.OpenAIAPIKey, article)
		if err != nil {
			logger.GetLogger().WithField("title", article.Title).Warnf("AI enhancement failed, using basic format: %v", err)
			u.appendLog(ctx, model.LogActionAIError, fmt.Sprintf("AI enhancement failed for %q: %v", article.Title, err))
		} else {
			content = enhanced
			u.appendLog(ctx, model.LogActionAIEnhance, fmt.Sprintf("Enhanced %q", article.Title))
		}
	}
	if content == "" {
		content = FormatBasicPost(article)
	}

	post := &model.Post{
		Title:   article.Title,
		Content: content,
		Status:  model.PostStatusPending,
	}
	if article.URL != "" {
		post.URL = &article.URL
	}
	if article.ImageURL != "" {
		post.ImageURL = &article.ImageURL
	}
	if article.Source != "" {
		post.Source = &article.Source
	}
	return u.posts.Create(ctx, post)
}

// EnsureDefaultSources seeds the well-known trucking feeds on first run.
func (u *newsUsecase) EnsureDefaultSources(ctx context.Context) error {
	count, err := u.sources.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []model.NewsSource{
		{Name: "Transport Topics", URL: "https://www.ttnews.com/rss.xml", Type: model.SourceTypeRSS, Enabled: true},
		{Name: "Trucking Info", URL: "https://www.truckinginfo.com/rss", Type: model.SourceTypeRSS, Enabled: true},
		{Name: "Fleet Owner", URL: "https://www.fleetowner.com/rss.xml", Type: model.SourceTypeRSS, Enabled: true},
		{Name: "Commercial Carrier Journal", URL: "https://www.ccjdigital.com/feed/", Type: model.SourceTypeRSS, Enabled: true},
		{Name: "Overdrive Magazine", URL: "https://www.overdriveonline.com/feed/", Type: model.SourceTypeRSS, Enabled: true},
		{Name: "Truck News", URL: "https://www.trucknews.com/feed/", Type: model.SourceTypeRSS, Enabled: true},
		{Name: "Trucking.com", URL: "https://www.trucking.com/feed/", Type: model.SourceTypeRSS, Enabled: true},
	}
	for i := range defaults {
		if err := u.sources.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	logger.GetLogger().WithField("count", len(defaults)).Info("Seeded default news sources")
	return nil
}

func (u *newsUsecase) appendLog(ctx context.Context, action, message string) {
	entry := &model.PostingLog{Action: action, Message: &message, Timestamp: time.Now().UTC()}
	if err := u.logs.Append(ctx, entry); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Appending posting log failed")
	}
}

// IsTruckingRelated reports whether the article mentions any trucking
// industry keyword, or pairs a US indicator with a general transport term.
func IsTruckingRelated(article *model.Article) bool {
	text := strings.ToLower(article.Title + " " + article.Summary)
	for _, kw := range truckingKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return containsAny(text, usaIndicators) && containsAny(text, transportTerms)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// ArticleHash identifies an article across fetches. URL alone is not enough,
// some feeds rotate tracking parameters, so the title participates too.
func ArticleHash(article *model.Article) string {
	sum := md5.Sum([]byte(article.Title + "|" + article.URL))
	return hex.EncodeToString(sum[:])
}
