package scout

import (
	"github.com/scouttrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 自分のファネル実績と収入サマリーを返す
func (h *Handler) GetDashboard(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	dashboard, err := h.TrackingService.GetScoutDashboard(scoutID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.tracking_fetch_failed", err)
		return
	}

	response.Success(c, dashboard)
}
