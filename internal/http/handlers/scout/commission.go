package scout

import (
	"errors"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CalculateCommissionRequest SB計算リクエスト
type CalculateCommissionRequest struct {
	EstimatedMonthlySales int64           `json:"estimated_monthly_sales" binding:"required"`
	SBType                string          `json:"sb_type" binding:"required"`
	SBRate                decimal.Decimal `json:"sb_rate"`
	ScoutShareRate        int             `json:"scout_share_rate"`
	PaymentCycle          string          `json:"payment_cycle"`
}

// CalculateCommission SB・スカウト収入を試算する
func (h *Handler) CalculateCommission(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	var req CalculateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shareRate := req.ScoutShareRate
	if shareRate == 0 {
		// 未指定なら本人の取り分を使う
		scout, err := h.ScoutRepo.GetByID(scoutID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.scout_fetch_failed", err)
			return
		}
		if scout != nil {
			shareRate = scout.ShareRate
		}
	}

	result, err := h.CommissionService.Calculate(service.CommissionInput{
		EstimatedMonthlySales: req.EstimatedMonthlySales,
		SBType:                req.SBType,
		SBRate:                req.SBRate,
		ScoutShareRate:        shareRate,
		PaymentCycle:          req.PaymentCycle,
	})
	if err != nil {
		respondCommissionError(c, err)
		return
	}

	response.Success(c, result)
}

// GetShopRates 店舗別のSB条件一覧を返す
func (h *Handler) GetShopRates(c *gin.Context) {
	rates, err := h.ShopService.ShopRates()
	if err != nil {
		respondError(c, response.CodeInternal, "error.shop_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"shops": rates})
}

// SimulateCommissionRequest 店舗比較シミュレーションリクエスト
type SimulateCommissionRequest struct {
	EstimatedMonthlySales int64  `json:"estimated_monthly_sales" binding:"required"`
	ShopIDs               []uint `json:"shop_ids" binding:"required"`
	ScoutShareRate        int    `json:"scout_share_rate"`
}

// SimulateCommission 複数店舗でスカウト収入を比較する
func (h *Handler) SimulateCommission(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	var req SimulateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shareRate := req.ScoutShareRate
	if shareRate == 0 {
		scout, err := h.ScoutRepo.GetByID(scoutID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.scout_fetch_failed", err)
			return
		}
		if scout != nil {
			shareRate = scout.ShareRate
		}
	}

	shops, err := h.ShopRepo.ListByIDs(req.ShopIDs)
	if err != nil {
		respondError(c, response.CodeInternal, "error.shop_fetch_failed", err)
		return
	}

	result, err := h.CommissionService.Simulate(req.EstimatedMonthlySales, shareRate, shops)
	if err != nil {
		respondCommissionError(c, err)
		return
	}

	response.Success(c, result)
}

func respondCommissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSalesInvalid):
		respondError(c, response.CodeBadRequest, "error.sales_invalid", nil)
	case errors.Is(err, service.ErrSBTypeInvalid):
		respondError(c, response.CodeBadRequest, "error.sb_type_invalid", nil)
	case errors.Is(err, service.ErrSBRateInvalid):
		respondError(c, response.CodeBadRequest, "error.sb_rate_invalid", nil)
	case errors.Is(err, service.ErrShareRateInvalid):
		respondError(c, response.CodeBadRequest, "error.share_rate_invalid", nil)
	case errors.Is(err, service.ErrPaymentCycleInvalid):
		respondError(c, response.CodeBadRequest, "error.payment_cycle_invalid", nil)
	case errors.Is(err, service.ErrShopNotFound):
		respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.commission_calc_failed", err)
	}
}
