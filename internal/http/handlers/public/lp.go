package public

import (
	"strings"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// LinkClickRequest クリック記録リクエスト
type LinkClickRequest struct {
	VisitorKey string `json:"visitor_key"`
	Referrer   string `json:"referrer"`
}

// RecordLinkClick 追跡リンクへのアクセスを記録し、リダイレクト先を返す
func (h *Handler) RecordLinkClick(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	// body は任意。訪問者キーを持たないクライアントも受け付ける。
	var req LinkClickRequest
	_ = c.ShouldBindJSON(&req)

	referrer := strings.TrimSpace(req.Referrer)
	if referrer == "" {
		referrer = c.GetHeader("Referer")
	}

	redirectURL, err := h.FunnelService.RecordClick(service.ClickInput{
		Code:       code,
		VisitorKey: strings.TrimSpace(req.VisitorKey),
		Referrer:   referrer,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondLPFetchError(c, err)
		return
	}

	response.Success(c, gin.H{"redirect_url": redirectURL})
}

// GetLP ミニLPの表示データを返す
func (h *Handler) GetLP(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	data, err := h.FunnelService.GetLPData(code)
	if err != nil {
		respondLPFetchError(c, err)
		return
	}

	response.Success(c, data)
}

// LPSubmitRequest LP応募フォームリクエスト。名前以外は任意。
type LPSubmitRequest struct {
	ApplicantName   string `json:"applicant_name" binding:"required"`
	ApplicantLineID string `json:"applicant_line_id"`
	ApplicantPhone  string `json:"applicant_phone"`
	ApplicantAge    *int   `json:"applicant_age"`
}

// SubmitLP LPからの応募/登録を受け付ける
func (h *Handler) SubmitLP(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req LPSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	conversion, err := h.FunnelService.Submit(service.SubmitInput{
		Code:            code,
		ApplicantName:   strings.TrimSpace(req.ApplicantName),
		ApplicantLineID: strings.TrimSpace(req.ApplicantLineID),
		ApplicantPhone:  strings.TrimSpace(req.ApplicantPhone),
		ApplicantAge:    req.ApplicantAge,
	})
	if err != nil {
		respondLPSubmitError(c, err)
		return
	}

	requestLog(c).Infow("lp_submission_accepted",
		"conversion_id", conversion.ID,
		"link_id", conversion.LinkID,
		"kind", conversion.Kind,
	)
	response.Success(c, gin.H{
		"conversion_id": conversion.ID,
		"kind":          conversion.Kind,
		"status":        conversion.Status,
	})
}
