package master

import (
	"errors"
	"strconv"
	"strings"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/repository"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ShopRequest 店舗作成・更新リクエスト
type ShopRequest struct {
	Name         string          `json:"name" binding:"required"`
	Area         string          `json:"area"`
	SBType       string          `json:"sb_type" binding:"required"`
	SBRate       decimal.Decimal `json:"sb_rate"`
	PaymentCycle string          `json:"payment_cycle"`
	HiringStatus string          `json:"hiring_status"`
	Notes        string          `json:"notes"`
}

func (r ShopRequest) toServiceInput() service.ShopInput {
	return service.ShopInput{
		Name:         strings.TrimSpace(r.Name),
		Area:         strings.TrimSpace(r.Area),
		SBType:       strings.TrimSpace(r.SBType),
		SBRate:       r.SBRate,
		PaymentCycle: strings.TrimSpace(r.PaymentCycle),
		HiringStatus: strings.TrimSpace(r.HiringStatus),
		Notes:        strings.TrimSpace(r.Notes),
	}
}

// ListShops 店舗一覧を返す
func (h *Handler) ListShops(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	shops, total, err := h.ShopService.List(repository.ShopListFilter{
		Page:         page,
		PageSize:     pageSize,
		Keyword:      strings.TrimSpace(c.Query("keyword")),
		Area:         strings.TrimSpace(c.Query("area")),
		SBType:       strings.TrimSpace(c.Query("sb_type")),
		HiringStatus: strings.TrimSpace(c.Query("hiring_status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.shop_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, shops, response.BuildPagination(page, pageSize, total))
}

// GetShop 店舗詳細を返す
func (h *Handler) GetShop(c *gin.Context) {
	id, ok := parseIDParam(c, "error.shop_id_invalid")
	if !ok {
		return
	}

	shop, err := h.ShopService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.shop_fetch_failed", err)
		return
	}

	response.Success(c, shop)
}

// CreateShop 店舗を登録する
func (h *Handler) CreateShop(c *gin.Context) {
	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shop, err := h.ShopService.Create(req.toServiceInput())
	if err != nil {
		respondShopSaveError(c, err)
		return
	}

	requestLog(c).Infow("shop_created",
		"shop_id", shop.ID,
		"operator_id", currentScoutID(c),
		"name", shop.Name,
	)
	response.Success(c, shop)
}

// UpdateShop 店舗情報を更新する
func (h *Handler) UpdateShop(c *gin.Context) {
	id, ok := parseIDParam(c, "error.shop_id_invalid")
	if !ok {
		return
	}

	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shop, err := h.ShopService.Update(id, req.toServiceInput())
	if err != nil {
		respondShopSaveError(c, err)
		return
	}

	response.Success(c, shop)
}

// DeleteShop 店舗を削除する
func (h *Handler) DeleteShop(c *gin.Context) {
	id, ok := parseIDParam(c, "error.shop_id_invalid")
	if !ok {
		return
	}

	if err := h.ShopService.Delete(id); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.shop_save_failed", err)
		return
	}

	requestLog(c).Infow("shop_deleted", "shop_id", id, "operator_id", currentScoutID(c))
	response.Success(c, nil)
}

func respondShopSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShopNotFound):
		respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
	case errors.Is(err, service.ErrShopNameRequired):
		respondError(c, response.CodeBadRequest, "error.shop_name_required", nil)
	case errors.Is(err, service.ErrSBTypeInvalid):
		respondError(c, response.CodeBadRequest, "error.sb_type_invalid", nil)
	case errors.Is(err, service.ErrSBRateInvalid):
		respondError(c, response.CodeBadRequest, "error.sb_rate_invalid", nil)
	case errors.Is(err, service.ErrPaymentCycleInvalid):
		respondError(c, response.CodeBadRequest, "error.payment_cycle_invalid", nil)
	case errors.Is(err, service.ErrShopHiringStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.hiring_status_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.shop_save_failed", err)
	}
}
