package http

import (
	"net/http"
	"strconv"

	"trucking-news/domain/dto"
	"trucking-news/domain/model"
	"trucking-news/domain/repository"
	"trucking-news/usecase"

	"github.com/gin-gonic/gin"
)

type ISourceHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	SetEnabled(c *gin.Context)
	Delete(c *gin.Context)
	Validate(c *gin.Context)
	FetchNow(c *gin.Context)
	FetchAll(c *gin.Context)
}

type SourceHandler struct {
	sourceRepository repository.INewsSource
	newsUsecase      usecase.INewsUsecase
}

func NewSourceHandler(sourceRepository repository.INewsSource, newsUsecase usecase.INewsUsecase) ISourceHandler {
	return &SourceHandler{sourceRepository: sourceRepository, newsUsecase: newsUsecase}
}

func (h *SourceHandler) List(c *gin.Context) {
	sources, err := h.sourceRepository.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	if sources == nil {
		sources = []*model.NewsSource{}
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: sources})
}

func (h *SourceHandler) Create(c *gin.Context) {
	var req dto.SourceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	sourceType := req.Type
	if sourceType == "" {
		sourceType = model.SourceTypeRSS
	}
	source := &model.NewsSource{Name: req.Name, URL: req.URL, Type: sourceType, Enabled: true}
	if err := h.sourceRepository.Create(c.Request.Context(), source); err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: source})
}

func (h *SourceHandler) SetEnabled(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid source id"})
		return
	}
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	if err := h.sourceRepository.SetEnabled(c.Request.Context(), id, req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *SourceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid source id"})
		return
	}
	if err := h.sourceRepository.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

// Validate parses a candidate feed URL without saving anything.
func (h *SourceHandler) Validate(c *gin.Context) {
	var req dto.SourceValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	info, err := h.newsUsecase.ValidateFeed(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: info})
}

// FetchNow fetches one source immediately.
func (h *SourceHandler) FetchNow(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid source id"})
		return
	}
	saved, err := h.newsUsecase.FetchSource(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{"new_posts": saved}})
}

// FetchAll runs a full fetch cycle across every enabled source.
func (h *SourceHandler) FetchAll(c *gin.Context) {
	saved, err := h.newsUsecase.FetchAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{"new_posts": saved}})
}
