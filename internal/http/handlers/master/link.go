package master

import (
	"errors"
	"strconv"
	"strings"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/repository"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ListLinks 全スカウトのリンク一覧を返す
func (h *Handler) ListLinks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	scoutID, _ := strconv.ParseUint(c.Query("scout_id"), 10, 64)
	shopID, _ := strconv.ParseUint(c.Query("shop_id"), 10, 64)

	var forceDisabled *bool
	if raw := strings.TrimSpace(c.Query("force_disabled")); raw != "" {
		flag := raw == "true"
		forceDisabled = &flag
	}

	links, total, err := h.LinkService.ListAll(repository.LinkListFilter{
		Page:          page,
		PageSize:      pageSize,
		ScoutID:       uint(scoutID),
		ShopID:        uint(shopID),
		Kind:          strings.TrimSpace(c.Query("kind")),
		Code:          strings.TrimSpace(c.Query("code")),
		ActiveOnly:    c.Query("active_only") == "true",
		ForceDisabled: forceDisabled,
	}, strings.TrimSpace(c.Query("sort_by")))
	if err != nil {
		respondError(c, response.CodeInternal, "error.link_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, links, response.BuildPagination(page, pageSize, total))
}

// ForceToggleLinkRequest 強制停止/解除リクエスト
type ForceToggleLinkRequest struct {
	Disabled bool   `json:"disabled"`
	Reason   string `json:"reason"`
}

// ForceToggleLink リンクを強制停止または解除する
func (h *Handler) ForceToggleLink(c *gin.Context) {
	operatorID, ok := getScoutID(c)
	if !ok {
		return
	}

	linkID, ok := parseIDParam(c, "error.link_not_found")
	if !ok {
		return
	}

	var req ForceToggleLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	link, err := h.LinkService.ForceToggle(operatorID, linkID, req.Disabled, strings.TrimSpace(req.Reason))
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			respondError(c, response.CodeNotFound, "error.link_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.link_save_failed", err)
		return
	}

	response.Success(c, link)
}

// GenerateLinkRequest 代理発行リクエスト
type GenerateLinkRequest struct {
	ScoutID       uint   `json:"scout_id" binding:"required"`
	Kind          string `json:"kind" binding:"required"`
	ShopID        *uint  `json:"shop_id"`
	LPHeadline    string `json:"lp_headline"`
	LPDescription string `json:"lp_description"`
	LPTemplate    string `json:"lp_template"`
}

// GenerateLink 指定スカウト名義でリンクを発行する
func (h *Handler) GenerateLink(c *gin.Context) {
	var req GenerateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	issued, err := h.LinkService.IssueLink(service.IssueLinkInput{
		ScoutID:       req.ScoutID,
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
		case errors.Is(err, service.ErrScoutNotFound):
			respondError(c, response.CodeNotFound, "error.scout_not_found", nil)
		case errors.Is(err, service.ErrShopNotFound):
			respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
		case errors.Is(err, service.ErrLinkCodeExhausted):
			respondError(c, response.CodeInternal, "error.link_code_exhausted", err)
		default:
			respondError(c, response.CodeInternal, "error.link_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("master_link_generated",
		"link_id", issued.Link.ID,
		"target_scout_id", req.ScoutID,
		"operator_id", currentScoutID(c),
	)
	response.Success(c, issued)
}
