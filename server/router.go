package server

import (
	"time"

	"trucking-news/domain/repository"
	"trucking-news/infrastructure/realtime"
	httpHandler "trucking-news/interfaces/http"
	"trucking-news/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	healthHandler httpHandler.IHealthHandler,
	postHandler httpHandler.IPostHandler,
	settingsHandler httpHandler.ISettingsHandler,
	sourceHandler httpHandler.ISourceHandler,
	tokenHandler httpHandler.ITokenHandler,
	aiHandler httpHandler.IAIHandler,
	consoleHub *realtime.Hub,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)
	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	api.GET("/posts", postHandler.GetRecent)
	api.GET("/posts/:id", postHandler.GetByID)
	api.POST("/posts/post-now", postHandler.PostNow)
	api.POST("/posts/:id/post", postHandler.PostByID)
	api.DELETE("/posts/:id/facebook", postHandler.Remove)
	api.GET("/stats", postHandler.Stats)
	api.GET("/insights", postHandler.Insights)
	api.GET("/logs", postHandler.Logs)

	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", settingsHandler.Update)

	api.GET("/sources", sourceHandler.List)
	api.POST("/sources", sourceHandler.Create)
	api.PATCH("/sources/:id", sourceHandler.SetEnabled)
	api.DELETE("/sources/:id", sourceHandler.Delete)
	api.POST("/sources/validate", sourceHandler.Validate)
	api.POST("/sources/:id/fetch", sourceHandler.FetchNow)
	api.POST("/fetch", sourceHandler.FetchAll)

	api.GET("/token/status", tokenHandler.Status)
	api.POST("/token/setup", tokenHandler.Setup)
	api.POST("/token/verify-page", tokenHandler.VerifyPage)
	api.POST("/token/renew", tokenHandler.RenewNow)

	api.POST("/ai/enhance", aiHandler.Enhance)
	api.POST("/ai/generate", aiHandler.Generate)
	api.POST("/ai/test", aiHandler.Test)

	api.GET("/console/stream", consoleHub.Serve)

	return router
}
