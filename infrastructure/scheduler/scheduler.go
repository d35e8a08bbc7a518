package scheduler

import (
	"context"
	"time"

	"trucking-news/infrastructure/configuration"
	"trucking-news/infrastructure/logger"
	"trucking-news/usecase"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 10 * time.Minute

// Scheduler runs the recurring jobs: token renewal checks, feed fetching,
// scheduled posting and cleanup.
type Scheduler struct {
	cron    *cron.Cron
	tokens  usecase.ITokenUsecase
	news    usecase.INewsUsecase
	posting usecase.IPostingUsecase
	cfg     configuration.Scheduler
}

func New(tokens usecase.ITokenUsecase, news usecase.INewsUsecase, posting usecase.IPostingUsecase, cfg configuration.Scheduler) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		tokens:  tokens,
		news:    news,
		posting: posting,
		cfg:     cfg,
	}
}

// Start registers all jobs and starts the cron loop. Jobs stop being
// scheduled once ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	log := logger.GetLogger()

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"token_renewal", s.cfg.RenewalCheckSpec, s.tokens.CheckAndRenew},
		{"fetch_news", s.cfg.FetchSpec, func(ctx context.Context) error {
			_, err := s.news.FetchAll(ctx)
			return err
		}},
		{"scheduled_posting", s.cfg.PostingSpec, s.posting.RunScheduled},
		{"cleanup", s.cfg.CleanupSpec, func(ctx context.Context) error {
			_, err := s.posting.Cleanup(ctx, s.cfg.CleanupAfterDays)
			return err
		}},
	}
	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			if err := job.run(jobCtx); err != nil {
				log.WithField("job", job.name).Errorf("Scheduled job failed: %v", err)
			}
		}); err != nil {
			return err
		}
		log.WithField("job", job.name).WithField("spec", job.spec).Info("Scheduled job registered")
	}

	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
	return nil
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
