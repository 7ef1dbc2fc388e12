package scout

import (
	"errors"
	"strconv"
	"strings"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/repository"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMyConversions 自分のリンク経由の応募記録一覧を返す
func (h *Handler) ListMyConversions(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	linkID, _ := strconv.ParseUint(c.Query("link_id"), 10, 64)

	conversions, total, err := h.ConversionService.List(repository.ConversionListFilter{
		Page:       page,
		PageSize:   pageSize,
		ScoutID:    scoutID,
		LinkID:     uint(linkID),
		Kind:       strings.TrimSpace(c.Query("kind")),
		Status:     strings.TrimSpace(c.Query("status")),
		UnpaidOnly: c.Query("unpaid_only") == "true",
		HiredOnly:  c.Query("hired_only") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.conversion_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, conversions, response.BuildPagination(page, pageSize, total))
}

// GetMyConversion 自分の応募記録の詳細を返す
func (h *Handler) GetMyConversion(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "error.conversion_id_invalid", nil)
		return
	}

	conversion, err := h.ConversionService.Get(uint(rawID), scoutID)
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

// UpdateMyConversionStatus 自分の応募記録のステータスを進める
func (h *Handler) UpdateMyConversionStatus(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "error.conversion_id_invalid", nil)
		return
	}

	var req UpdateConversionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	conversion, err := h.ConversionService.UpdateStatus(uint(rawID), scoutID, service.UpdateStatusInput{
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

	requestLog(c).Infow("conversion_status_changed",
		"conversion_id", conversion.ID,
		"scout_id", scoutID,
		"status", conversion.Status,
	)
	response.Success(c, conversion)
}
