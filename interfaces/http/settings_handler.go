package http

import (
	"net/http"
	"time"

	"trucking-news/domain/dto"
	"trucking-news/domain/repository"
	"trucking-news/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

type ISettingsHandler interface {
	Get(c *gin.Context)
	Update(c *gin.Context)
}

type SettingsHandler struct {
	settingsRepository repository.ISettings
}

func NewSettingsHandler(settingsRepository repository.ISettings) ISettingsHandler {
	return &SettingsHandler{settingsRepository: settingsRepository}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsRepository.Get(c.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Loading settings failed")
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{
		"settings":           settings,
		"openai_key_present": settings.OpenAIAPIKey != "",
	}})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}

	settings, err := h.settingsRepository.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	if req.PostsPerDay > 0 {
		settings.PostsPerDay = req.PostsPerDay
	}
	if req.PostingHours != "" {
		settings.PostingHours = req.PostingHours
	}
	settings.Enabled = req.Enabled
	settings.AIEnhancementEnabled = req.AIEnhancementEnabled
	if req.AIPostStyle != "" {
		settings.AIPostStyle = req.AIPostStyle
	}
	// Empty key in the request means "keep the stored one".
	if req.OpenAIAPIKey != "" {
		settings.OpenAIAPIKey = req.OpenAIAPIKey
	}
	settings.LastUpdated = time.Now().UTC()

	if err := h.settingsRepository.Save(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: settings})
}
