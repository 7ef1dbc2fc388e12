package master

import (
	"errors"
	"strings"
	"time"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// GetOverview 組織全体のファネル統計を返す
func (h *Handler) GetOverview(c *gin.Context) {
	period := strings.TrimSpace(c.Query("period"))

	overview, err := h.TrackingService.GetOverview(period)
	if err != nil {
		respondError(c, response.CodeInternal, "error.tracking_fetch_failed", err)
		return
	}

	response.Success(c, overview)
}

// GetScoutRanking スカウト成績ランキングを返す
func (h *Handler) GetScoutRanking(c *gin.Context) {
	metric := strings.TrimSpace(c.Query("metric"))

	ranking, err := h.TrackingService.GetRanking(metric)
	if err != nil {
		if errors.Is(err, service.ErrRankingMetricInvalid) {
			respondError(c, response.CodeBadRequest, "error.ranking_metric_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.tracking_fetch_failed", err)
		return
	}

	response.Success(c, ranking)
}

// GetScoutDetail 特定スカウトのリンク・応募記録を返す
func (h *Handler) GetScoutDetail(c *gin.Context) {
	scoutID, ok := parseIDParam(c, "error.scout_id_invalid")
	if !ok {
		return
	}

	detail, err := h.TrackingService.GetScoutDetail(scoutID)
	if err != nil {
		if errors.Is(err, service.ErrScoutNotFound) {
			respondError(c, response.CodeNotFound, "error.scout_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.tracking_fetch_failed", err)
		return
	}

	response.Success(c, detail)
}

// GetDailyReport 当日の活動速報とアラートを返す
func (h *Handler) GetDailyReport(c *gin.Context) {
	now := time.Now()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		now = parsed
	}

	report, err := h.TrackingService.GetDailyReport(now)
	if err != nil {
		respondError(c, response.CodeInternal, "error.tracking_fetch_failed", err)
		return
	}

	response.Success(c, report)
}
