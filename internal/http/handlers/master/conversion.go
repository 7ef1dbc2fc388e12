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

// ListConversions 全スカウトの応募記録一覧を返す
func (h *Handler) ListConversions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	scoutID, _ := strconv.ParseUint(c.Query("scout_id"), 10, 64)
	linkID, _ := strconv.ParseUint(c.Query("link_id"), 10, 64)
	shopID, _ := strconv.ParseUint(c.Query("shop_id"), 10, 64)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	conversions, total, err := h.ConversionService.List(repository.ConversionListFilter{
		Page:        page,
		PageSize:    pageSize,
		ScoutID:     uint(scoutID),
		LinkID:      uint(linkID),
		ShopID:      uint(shopID),
		Kind:        strings.TrimSpace(c.Query("kind")),
		Status:      strings.TrimSpace(c.Query("status")),
		UnpaidOnly:  c.Query("unpaid_only") == "true",
		HiredOnly:   c.Query("hired_only") == "true",
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.conversion_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, conversions, response.BuildPagination(page, pageSize, total))
}

// GetConversion 応募記録の詳細を返す
func (h *Handler) GetConversion(c *gin.Context) {
	id, ok := parseIDParam(c, "error.conversion_id_invalid")
	if !ok {
		return
	}

	conversion, err := h.ConversionService.Get(id, 0)
	if err != nil {
		if errors.Is(err, service.ErrConversionNotFound) {
			respondError(c, response.CodeNotFound, "error.conversion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.conversion_fetch_failed", err)
		return
	}

	response.Success(c, conversion)
}

// UpdateConversionStatusRequest ステータス更新リクエスト
type UpdateConversionStatusRequest struct {
	Status                string `json:"status" binding:"required"`
	Notes                 string `json:"notes"`
	EstimatedMonthlySales *int64 `json:"estimated_monthly_sales"`
}

// UpdateConversionStatus 任意の応募記録のステータスを進める
func (h *Handler) UpdateConversionStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "error.conversion_id_invalid")
	if !ok {
		return
	}

	var req UpdateConversionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	conversion, err := h.ConversionService.UpdateStatus(id, 0, service.UpdateStatusInput{
		Status:                req.Status,
		Notes:                 strings.TrimSpace(req.Notes),
		EstimatedMonthlySales: req.EstimatedMonthlySales,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversionNotFound):
			respondError(c, response.CodeNotFound, "error.conversion_not_found", nil)
		case errors.Is(err, service.ErrConversionStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.conversion_status_invalid", nil)
		case errors.Is(err, service.ErrSalesInvalid):
			respondError(c, response.CodeBadRequest, "error.sales_invalid", nil)
		case errors.Is(err, service.ErrShopNotFound):
			respondError(c, response.CodeBadRequest, "error.shop_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.conversion_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("master_conversion_status_changed",
		"conversion_id", conversion.ID,
		"operator_id", currentScoutID(c),
		"status", conversion.Status,
	)
	response.Success(c, conversion)
}

// UpdateConversionSBRequest SB手動調整リクエスト
type UpdateConversionSBRequest struct {
	SBAmount    int64  `json:"sb_amount" binding:"required"`
	ScoutIncome int64  `json:"scout_income"`
	IsSBPaid    bool   `json:"is_sb_paid"`
	Notes       string `json:"notes"`
}

// UpdateConversionSB SB金額・支払状態を手動調整する
func (h *Handler) UpdateConversionSB(c *gin.Context) {
	id, ok := parseIDParam(c, "error.conversion_id_invalid")
	if !ok {
		return
	}

	var req UpdateConversionSBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	conversion, err := h.ConversionService.UpdateSB(id, service.SBUpdateInput{
		SBAmount:    req.SBAmount,
		ScoutIncome: req.ScoutIncome,
		IsSBPaid:    req.IsSBPaid,
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversionNotFound):
			respondError(c, response.CodeNotFound, "error.conversion_not_found", nil)
		case errors.Is(err, service.ErrSalesInvalid):
			respondError(c, response.CodeBadRequest, "error.sales_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.conversion_save_failed", err)
		}
		return
	}

	requestLog(c).Infow("conversion_sb_adjusted",
		"conversion_id", conversion.ID,
		"operator_id", currentScoutID(c),
		"sb_amount", req.SBAmount,
		"is_sb_paid", req.IsSBPaid,
	)
	response.Success(c, conversion)
}

// BulkMarkPaidRequest SB一括支払済みリクエスト
type BulkMarkPaidRequest struct {
	ConversionIDs []uint `json:"conversion_ids" binding:"required"`
	Notes         string `json:"notes"`
}

// BulkMarkPaid 複数の応募記録のSBを一括で支払済みにする
func (h *Handler) BulkMarkPaid(c *gin.Context) {
	var req BulkMarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if len(req.ConversionIDs) == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	updated, err := h.ConversionService.BulkMarkPaid(req.ConversionIDs, strings.TrimSpace(req.Notes))
	if err != nil {
		respondError(c, response.CodeInternal, "error.conversion_save_failed", err)
		return
	}

	requestLog(c).Infow("conversion_sb_bulk_paid",
		"operator_id", currentScoutID(c),
		"requested", len(req.ConversionIDs),
		"updated", updated,
	)
	response.Success(c, gin.H{"updated": updated})
}
