package http

import (
	"net/http"

	"trucking-news/domain/dto"
	"trucking-news/infrastructure/logger"
	"trucking-news/usecase"

	"github.com/gin-gonic/gin"
)

type ITokenHandler interface {
	Status(c *gin.Context)
	Setup(c *gin.Context)
	VerifyPage(c *gin.Context)
	RenewNow(c *gin.Context)
}

type TokenHandler struct {
	tokenUsecase usecase.ITokenUsecase
}

func NewTokenHandler(tokenUsecase usecase.ITokenUsecase) ITokenHandler {
	return &TokenHandler{tokenUsecase: tokenUsecase}
}

func (h *TokenHandler) Status(c *gin.Context) {
	status, err := h.tokenUsecase.Status(c.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Loading token status failed")
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: status})
}

// Setup stores a manually supplied page token along with the app identity
// needed for automatic renewal.
func (h *TokenHandler) Setup(c *gin.Context) {
	var req dto.TokenSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}
	cred, err := h.tokenUsecase.Setup(c.Request.Context(), req.PageID, req.AccessToken, req.AppID, req.AppSecret, autoRenew)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: cred})
}

func (h *TokenHandler) VerifyPage(c *gin.Context) {
	var req dto.VerifyPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	page, err := h.tokenUsecase.VerifyPage(c.Request.Context(), req.PageID, req.AccessToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: page})
}

// RenewNow forces a token renewal regardless of expiry.
func (h *TokenHandler) RenewNow(c *gin.Context) {
	cred, err := h.tokenUsecase.RenewNow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{
		"page_id":    cred.PageID,
		"expires_at": cred.ExpiresAt,
	}})
}
