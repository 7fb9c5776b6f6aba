package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/yeyakmania/booking-api/internal/httpresp"
	ucAccount "github.com/yeyakmania/booking-api/internal/usecase/account"
)

type AuthHandler struct {
	login  *ucAccount.GoogleLogin
	logger *slog.Logger
}

func NewAuthHandler(login *ucAccount.GoogleLogin, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{login: login, logger: logger}
}

type googleCallbackRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

func (h *AuthHandler) GoogleURL(c *gin.Context) {
	url, err := h.login.URL(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, gin.H{"url": url})
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var req googleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.login.Callback(c.Request.Context(), req.Code, req.State)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, res)
}
