package usecase

import (
	"context"
	"fmt"
	"time"

	"trucking-news/domain/model"
	"trucking-news/domain/repository"
	"trucking-news/infrastructure/logger"
)

// IActivityNotifier pushes activity entries to connected dashboard consoles.
type IActivityNotifier interface {
	Broadcast(log *model.PostingLog)
}

// IPostingUsecase publishes pending posts to the Facebook page.
type IPostingUsecase interface {
	PostNext(ctx context.Context) (*model.Post, error)
	PostByID(ctx context.Context, id int64) (*model.Post, error)
	RunScheduled(ctx context.Context) error
	RemovePost(ctx context.Context, id int64) error
	Insights(ctx context.Context) (map[string]int64, error)
	Stats(ctx context.Context) (map[string]int, error)
	Cleanup(ctx context.Context, days int) (int64, error)
	WithRefill(refill func(ctx context.Context) (int, error)) IPostingUsecase
}

type postingUsecase struct {
	posts    repository.IPost
	settings repository.ISettings
	logs     repository.IPostingLog
	creds    repository.IPageCredential
	graph    repository.IFacebookGraph
	notifier IActivityNotifier
	refill   func(ctx context.Context) (int, error)
}

func NewPostingUsecase(
	posts repository.IPost,
	settings repository.ISettings,
	logs repository.IPostingLog,
	creds repository.IPageCredential,
	graph repository.IFacebookGraph,
	notifier IActivityNotifier,
) IPostingUsecase {
	return &postingUsecase{
		posts:    posts,
		settings: settings,
		logs:     logs,
		creds:    creds,
		graph:    graph,
		notifier: notifier,
	}
}

// WithRefill installs a callback that tops up the queue when a posting
// window opens with nothing pending, typically a news fetch.
func (u *postingUsecase) WithRefill(refill func(ctx context.Context) (int, error)) IPostingUsecase {
	u.refill = refill
	return u
}

// PostNext publishes the oldest pending post. Returns (nil, nil) when the
// queue is empty.
func (u *postingUsecase) PostNext(ctx context.Context) (*model.Post, error) {
	post, err := u.posts.GetFirstPending(ctx)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	return post, u.publish(ctx, post)
}

// PostByID publishes a specific pending post, e.g. from the dashboard's
// post-now button.
func (u *postingUsecase) PostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := u.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %d not found", id)
	}
	if post.Status != model.PostStatusPending {
		return nil, fmt.Errorf("post %d is %s, only pending posts can be published", id, post.Status)
	}
	return post, u.publish(ctx, post)
}

// RunScheduled is the hourly scheduler entry point. It posts at most once
// per configured posting hour.
func (u *postingUsecase) RunScheduled(ctx context.Context) error {
	log := logger.GetLogger()
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.Enabled {
		log.Debug("Automatic posting disabled")
		return nil
	}

	now := time.Now().UTC()
	inWindow := false
	for _, h := range settings.PostingHourList() {
		if now.Hour() == h {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return nil
	}

	hourStart := now.Truncate(time.Hour)
	posted, err := u.posts.HasPostedSince(ctx, hourStart)
	if err != nil {
		return err
	}
	if posted {
		log.Debug("Already posted this hour")
		return nil
	}

	post, err := u.PostNext(ctx)
	if err != nil {
		return err
	}
	if post == nil && u.refill != nil {
		fetched, err := u.refill(ctx)
		if err != nil {
			log.Warnf("Refilling post queue failed: %v", err)
		} else if fetched > 0 {
			post, err = u.PostNext(ctx)
			if err != nil {
				return err
			}
		}
	}
	if post == nil {
		u.appendLog(ctx, nil, model.LogActionSkip, "Posting window open but no pending posts")
	}
	return nil
}

func (u *postingUsecase) publish(ctx context.Context, post *model.Post) error {
	log := logger.GetLogger()
	cred, err := u.creds.Get(ctx)
	if err != nil {
		return err
	}
	if cred == nil || cred.AccessToken == "" {
		err := fmt.Errorf("facebook page is not configured")
		u.appendLog(ctx, &post.ID, model.LogActionError, err.Error())
		return err
	}

	fbPostID, err := u.graph.PublishPost(ctx, cred.PageID, cred.AccessToken, post)
	if err != nil {
		log.WithField("post_id", post.ID).Errorf("Publishing post failed: %v", err)
		if markErr := u.posts.MarkFailed(ctx, post.ID, err.Error()); markErr != nil {
			log.WithField("post_id", post.ID).Errorf("Marking post failed errored: %v", markErr)
		}
		u.appendLog(ctx, &post.ID, model.LogActionError, fmt.Sprintf("Publishing %q failed: %v", post.Title, err))
		return err
	}

	if err := u.posts.MarkPosted(ctx, post.ID, fbPostID); err != nil {
		return err
	}
	post.Status = model.PostStatusPosted
	post.FacebookPostID = &fbPostID
	now := time.Now().UTC()
	post.PostedAt = &now
	log.WithField("post_id", post.ID).WithField("facebook_post_id", fbPostID).Info("Post published")
	u.appendLog(ctx, &post.ID, model.LogActionPost, fmt.Sprintf("Published %q", post.Title))
	return nil
}

// RemovePost deletes a published post from the Facebook page.
func (u *postingUsecase) RemovePost(ctx context.Context, id int64) error {
	post, err := u.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil || post.FacebookPostID == nil {
		return fmt.Errorf("post %d has not been published", id)
	}
	cred, err := u.creds.Get(ctx)
	if err != nil {
		return err
	}
	if cred == nil || cred.AccessToken == "" {
		return fmt.Errorf("facebook page is not configured")
	}
	return u.graph.DeletePost(ctx, *post.FacebookPostID, cred.AccessToken)
}

// Insights returns basic page metrics for the dashboard.
func (u *postingUsecase) Insights(ctx context.Context) (map[string]int64, error) {
	cred, err := u.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil || cred.AccessToken == "" {
		return nil, fmt.Errorf("facebook page is not configured")
	}
	return u.graph.PageInsights(ctx, cred.PageID, cred.AccessToken)
}

// Stats counts posts per status.
func (u *postingUsecase) Stats(ctx context.Context) (map[string]int, error) {
	stats := map[string]int{}
	for _, status := range []string{model.PostStatusPending, model.PostStatusPosted, model.PostStatusFailed, model.PostStatusSkipped} {
		n, err := u.posts.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats[status] = n
	}
	return stats, nil
}

// Cleanup deletes posts older than the retention window.
func (u *postingUsecase) Cleanup(ctx context.Context, days int) (int64, error) {
	deleted, err := u.posts.DeleteOlderThan(ctx, days)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.GetLogger().WithField("deleted", deleted).Info("Cleaned up old posts")
		u.appendLog(ctx, nil, model.LogActionCleanup, fmt.Sprintf("Removed %d posts older than %d days", deleted, days))
	}
	return deleted, nil
}

func (u *postingUsecase) appendLog(ctx context.Context, postID *int64, action, message string) {
	entry := &model.PostingLog{PostID: postID, Action: action, Message: &message, Timestamp: time.Now().UTC()}
	if err := u.logs.Append(ctx, entry); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Appending posting log failed")
	}
	if u.notifier != nil {
		u.notifier.Broadcast(entry)
	}
}
