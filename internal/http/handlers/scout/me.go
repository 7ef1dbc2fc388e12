package scout

import (
	"errors"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/i18n"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMe 自分のプロフィールを返す
func (h *Handler) GetMe(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	scout, err := h.ScoutRepo.GetByID(scoutID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.scout_fetch_failed", err)
		return
	}
	if scout == nil {
		respondError(c, response.CodeNotFound, "error.scout_not_found", nil)
		return
	}

	response.Success(c, gin.H{
		"id":            scout.ID,
		"email":         scout.Email,
		"display_name":  scout.DisplayName,
		"role":          scout.Role,
		"share_rate":    scout.ShareRate,
		"last_login_at": scout.LastLoginAt,
		"created_at":    scout.CreatedAt,
	})
}

// ChangePasswordRequest パスワード変更リクエスト
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 自分のパスワードを変更する。変更後は既存トークンを全て失効させる。
func (h *Handler) ChangePassword(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(scoutID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.scout_not_found", nil)
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.password_incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			locale := i18n.ResolveLocale(c)
			if perr, ok := err.(interface {
				Key() string
				Args() []interface{}
			}); ok {
				msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
				respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
				return
			}
			respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		default:
			respondError(c, response.CodeInternal, "error.password_change_failed", err)
		}
		return
	}

	requestLog(c).Infow("password_changed", "scout_id", scoutID)
	response.Success(c, gin.H{"changed": true})
}
