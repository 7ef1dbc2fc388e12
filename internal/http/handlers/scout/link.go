package scout

import (
	"errors"
	"strconv"
	"strings"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateLinkRequest リンク発行リクエスト
type CreateLinkRequest struct {
	Kind          string `json:"kind" binding:"required"`
	ShopID        *uint  `json:"shop_id"`
	LPHeadline    string `json:"lp_headline"`
	LPDescription string `json:"lp_description"`
	LPTemplate    string `json:"lp_template"`
}

// CreateLink 紹介リンクを発行する
func (h *Handler) CreateLink(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	issued, err := h.LinkService.IssueLink(service.IssueLinkInput{
		ScoutID:       scoutID,
		Kind:          req.Kind,
		ShopID:        req.ShopID,
		LPHeadline:    strings.TrimSpace(req.LPHeadline),
		LPDescription: strings.TrimSpace(req.LPDescription),
		LPTemplate:    strings.TrimSpace(req.LPTemplate),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkKindInvalid):
			respondError(c, response.CodeBadRequest, "error.link_kind_invalid", nil)
		case errors.Is(err, service.ErrShopNotFound):
			respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
		case errors.Is(err, service.ErrScoutNotFound):
			respondError(c, response.CodeNotFound, "error.scout_not_found", nil)
		case errors.Is(err, service.ErrLinkCodeExhausted):
			respondError(c, response.CodeInternal, "error.link_code_exhausted", err)
		default:
			respondError(c, response.CodeInternal, "error.link_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("link_issued",
		"link_id", issued.Link.ID,
		"scout_id", scoutID,
		"kind", issued.Link.Kind,
		"code", issued.Link.Code,
	)
	response.Success(c, issued)
}

// ListMyLinks 自分のリンク一覧を返す
func (h *Handler) ListMyLinks(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	kind := strings.TrimSpace(c.Query("kind"))
	links, err := h.LinkService.MyLinks(scoutID, kind)
	if err != nil {
		respondError(c, response.CodeInternal, "error.link_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{"links": links})
}

// ToggleLink 自分のリンクの有効/無効を切り替える
func (h *Handler) ToggleLink(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "error.link_not_found", nil)
		return
	}

	active, err := h.LinkService.Toggle(scoutID, uint(rawID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			respondError(c, response.CodeNotFound, "error.link_not_found", nil)
		case errors.Is(err, service.ErrLinkForceDisabled):
			respondError(c, response.CodeBadRequest, "error.link_force_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.link_save_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"id": rawID, "is_active": active})
}
