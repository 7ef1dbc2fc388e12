package public

import (
	"errors"

	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Email          string                `json:"email" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// Login スカウトログイン
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.toServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
				return
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
				return
			case errors.Is(captchaErr, service.ErrCaptchaConfigInvalid):
				respondError(c, response.CodeInternal, "error.captcha_config_invalid", captchaErr)
				return
			default:
				respondError(c, response.CodeInternal, "error.captcha_verify_failed", captchaErr)
				return
			}
		}
	}

	scout, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeUnauthorized, "error.account_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.login_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"scout": gin.H{
			"id":           scout.ID,
			"email":        scout.Email,
			"display_name": scout.DisplayName,
			"role":         scout.Role,
			"share_rate":   scout.ShareRate,
		},
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
