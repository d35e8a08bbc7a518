package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trucking-news/infrastructure/cache"
	facebookclient "trucking-news/infrastructure/clients/facebook"
	openaiclient "trucking-news/infrastructure/clients/openai"
	"trucking-news/infrastructure/configuration"
	"trucking-news/infrastructure/feed"
	"trucking-news/infrastructure/logger"
	"trucking-news/infrastructure/persistence"
	"trucking-news/infrastructure/realtime"
	"trucking-news/infrastructure/scheduler"
	httpHandler "trucking-news/interfaces/http"
	"trucking-news/server"
	"trucking-news/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		os.Exit(1)
	}
	if err := persistence.EnsureSchema(psqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("Ensuring database schema failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("Database connected.")

	// Redis is optional: without it the article dedup cache falls back to
	// the database-only check.
	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without article cache")
		redisClient = nil
	} else {
		logger.GetLogger().Info("Redis client initialized successfully.")
	}

	postRepository := persistence.NewPostRepository(psqlDb)
	settingsRepository := persistence.NewSettingsRepository(psqlDb)
	sourceRepository := persistence.NewNewsSourceRepository(psqlDb)
	logRepository := persistence.NewPostingLogRepository(psqlDb)
	credentialRepository := persistence.NewPageCredentialRepository(psqlDb)
	userRepository := persistence.NewUserRepository(psqlDb)
	articleCache := cache.NewArticleCache(redisClient)

	graphClient := facebookclient.NewGraphClient(configuration.C.Facebook.GraphBaseURL)
	chatClient := openaiclient.NewChatClient(configuration.C.OpenAI.BaseURL, configuration.C.OpenAI.Model)
	feedFetcher := feed.NewFetcher()
	consoleHub := realtime.NewConsoleHub()

	userUsecase := usecase.NewUserUsecase(userRepository)
	enhancerUsecase := usecase.NewEnhancerUsecase(chatClient)
	tokenUsecase := usecase.NewTokenUsecase(credentialRepository, graphClient, logRepository, configuration.C.Scheduler.RenewalThresholdDays)
	newsUsecase := usecase.NewNewsUsecase(sourceRepository, postRepository, settingsRepository, logRepository, feedFetcher, articleCache, enhancerUsecase)
	postingUsecase := usecase.NewPostingUsecase(postRepository, settingsRepository, logRepository, credentialRepository, graphClient, consoleHub).
		WithRefill(newsUsecase.FetchAll)

	if err := newsUsecase.EnsureDefaultSources(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Seeding default news sources failed")
	}

	userHandler := httpHandler.NewUserHandler(userUsecase)
	healthHandler := httpHandler.NewHealthHandler(psqlDb)
	postHandler := httpHandler.NewPostHandler(postRepository, logRepository, postingUsecase)
	settingsHandler := httpHandler.NewSettingsHandler(settingsRepository)
	sourceHandler := httpHandler.NewSourceHandler(sourceRepository, newsUsecase)
	tokenHandler := httpHandler.NewTokenHandler(tokenUsecase)
	aiHandler := httpHandler.NewAIHandler(enhancerUsecase, settingsRepository)

	router := server.InitiateRouter(
		userHandler,
		healthHandler,
		postHandler,
		settingsHandler,
		sourceHandler,
		tokenHandler,
		aiHandler,
		consoleHub,
		userRepository,
	)

	jobs := scheduler.New(tokenUsecase, newsUsecase, postingUsecase, configuration.C.Scheduler)
	if err := jobs.Start(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Starting scheduler failed")
		os.Exit(1)
	}

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	jobs.Stop()

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
