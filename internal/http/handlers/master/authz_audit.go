package master

import (
	"strconv"
	"strings"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs 権限変更の監査ログ一覧を返す
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var operatorScoutID uint
	if raw := strings.TrimSpace(c.Query("operator_scout_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		operatorScoutID = uint(parsed)
	}

	var targetScoutID uint
	if raw := strings.TrimSpace(c.Query("target_scout_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		targetScoutID = uint(parsed)
	}

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

	items, total, err := h.AuthzAuditService.ListForMaster(repository.AuthzAuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorScoutID: operatorScoutID,
		TargetScoutID:   targetScoutID,
		Action:          strings.TrimSpace(c.Query("action")),
		Role:            strings.TrimSpace(c.Query("role")),
		Object:          strings.TrimSpace(c.Query("object")),
		Method:          strings.TrimSpace(c.Query("method")),
		CreatedFrom:     createdFrom,
		CreatedTo:       createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}
