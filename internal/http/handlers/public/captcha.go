package public

import (
	"errors"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 画像認証コードを発行する
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", service.ErrCaptchaConfigInvalid)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaConfigInvalid):
			respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// GetCaptchaSetting 認証コードの公開設定を返す
func (h *Handler) GetCaptchaSetting(c *gin.Context) {
	if h.CaptchaService == nil {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	response.Success(c, h.CaptchaService.PublicSetting())
}
