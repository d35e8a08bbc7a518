package http

import (
	"net/http"

	"trucking-news/domain/dto"
	"trucking-news/domain/model"
	"trucking-news/domain/repository"
	"trucking-news/usecase"

	"github.com/gin-gonic/gin"
)

type IAIHandler interface {
	Enhance(c *gin.Context)
	Generate(c *gin.Context)
	Test(c *gin.Context)
}

type AIHandler struct {
	enhancerUsecase    usecase.IEnhancerUsecase
	settingsRepository repository.ISettings
}

func NewAIHandler(enhancerUsecase usecase.IEnhancerUsecase, settingsRepository repository.ISettings) IAIHandler {
	return &AIHandler{enhancerUsecase: enhancerUsecase, settingsRepository: settingsRepository}
}

func (h *AIHandler) apiKey(c *gin.Context) (string, bool) {
	settings, err := h.settingsRepository.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return "", false
	}
	if settings.OpenAIAPIKey == "" {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "OpenAI API key is not configured"})
		return "", false
	}
	return settings.OpenAIAPIKey, true
}

// Enhance rewrites supplied article content through the AI enhancer.
func (h *AIHandler) Enhance(c *gin.Context) {
	var req dto.EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	key, ok := h.apiKey(c)
	if !ok {
		return
	}
	article := &model.Article{Title: req.Title, Content: req.Content, URL: req.URL, Source: req.Source}
	enhanced, err := h.enhancerUsecase.EnhanceArticle(c.Request.Context(), key, article)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{"content": enhanced}})
}

// Generate creates a post from scratch about a topic.
func (h *AIHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	key, ok := h.apiKey(c)
	if !ok {
		return
	}
	content, err := h.enhancerUsecase.GenerateCustomPost(c.Request.Context(), key, req.Topic, req.Style)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{"content": content}})
}

// Test checks a candidate API key before it is saved.
func (h *AIHandler) Test(c *gin.Context) {
	var req dto.AITestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	reply, err := h.enhancerUsecase.TestConnection(c.Request.Context(), req.APIKey)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{"reply": reply}})
}
