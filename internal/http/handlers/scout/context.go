package scout

import (
	handlershared "github.com/scouttrack/internal/http/handlers/shared"

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
