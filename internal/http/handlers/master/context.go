package master

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/scouttrack/internal/http/handlers/shared"
	"github.com/scouttrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getScoutID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "scout_id", "error.scout_id_invalid", "error.scout_id_type_invalid")
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func currentScoutID(c *gin.Context) uint {
	value, exists := c.Get("scout_id")
	if !exists {
		return 0
	}
	switch scoutID := value.(type) {
	case uint:
		return scoutID
	case int:
		if scoutID > 0 {
			return uint(scoutID)
		}
	case float64:
		if scoutID > 0 {
			return uint(scoutID)
		}
	}
	return 0
}

func currentEmail(c *gin.Context) string {
	value, exists := c.Get("scout_email")
	if !exists {
		return ""
	}
	if email, ok := value.(string); ok {
		return strings.TrimSpace(email)
	}
	return ""
}

func currentRequestID(c *gin.Context) string {
	value, exists := c.Get("request_id")
	if !exists {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return strings.TrimSpace(requestID)
	}
	return ""
}

func parseIDParam(c *gin.Context, invalidKey string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(id), true
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
