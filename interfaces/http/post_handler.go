package http

import (
	"net/http"
	"strconv"

	"trucking-news/domain/dto"
	"trucking-news/domain/model"
	"trucking-news/domain/repository"
	"trucking-news/infrastructure/logger"
	"trucking-news/usecase"

	"github.com/gin-gonic/gin"
)

type IPostHandler interface {
	GetRecent(c *gin.Context)
	GetByID(c *gin.Context)
	PostNow(c *gin.Context)
	PostByID(c *gin.Context)
	Remove(c *gin.Context)
	Stats(c *gin.Context)
	Insights(c *gin.Context)
	Logs(c *gin.Context)
}

type PostHandler struct {
	postRepository repository.IPost
	logRepository  repository.IPostingLog
	postingUsecase usecase.IPostingUsecase
}

func NewPostHandler(postRepository repository.IPost, logRepository repository.IPostingLog, postingUsecase usecase.IPostingUsecase) IPostHandler {
	return &PostHandler{
		postRepository: postRepository,
		logRepository:  logRepository,
		postingUsecase: postingUsecase,
	}
}

func (h *PostHandler) GetRecent(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	posts, err := h.postRepository.GetRecent(c.Request.Context(), limit)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Listing posts failed")
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: posts})
}

func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid post id"})
		return
	}
	post, err := h.postRepository.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, dto.Res{ResponseCode: "404", ResponseMessage: "post not found"})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: post})
}

// PostNow publishes the oldest pending post immediately.
func (h *PostHandler) PostNow(c *gin.Context) {
	post, err := h.postingUsecase.PostNext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "No pending posts"})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: post})
}

func (h *PostHandler) PostByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid post id"})
		return
	}
	post, err := h.postingUsecase.PostByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: post})
}

// Remove deletes a published post from the Facebook page.
func (h *PostHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: "invalid post id"})
		return
	}
	if err := h.postingUsecase.RemovePost(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *PostHandler) Stats(c *gin.Context) {
	stats, err := h.postingUsecase.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: stats})
}

func (h *PostHandler) Insights(c *gin.Context) {
	insights, err := h.postingUsecase.Insights(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: insights})
}

func (h *PostHandler) Logs(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	logs, err := h.logRepository.GetRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	if logs == nil {
		logs = []*model.PostingLog{}
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: logs})
}
