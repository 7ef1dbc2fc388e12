package public

import (
	"errors"

	handlershared "github.com/scouttrack/internal/http/handlers/shared"
	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// mappedHandlerError 業務エラーとAPIエラー応答の対応を定義する。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var lpCommonErrorRules = []mappedHandlerError{
	{target: service.ErrLinkNotFound, code: response.CodeNotFound, key: "error.link_not_found"},
}

var lpSubmitExtraErrorRules = []mappedHandlerError{
	{target: service.ErrLinkForceDisabled, code: response.CodeBadRequest, key: "error.link_force_disabled"},
	{target: service.ErrLinkDisabled, code: response.CodeBadRequest, key: "error.link_disabled"},
}

func respondLPFetchError(c *gin.Context, err error) {
	respondWithMappedError(c, err, lpCommonErrorRules, response.CodeInternal, "error.lp_fetch_failed")
}

func respondLPSubmitError(c *gin.Context, err error) {
	rules := make([]mappedHandlerError, 0, len(lpCommonErrorRules)+len(lpSubmitExtraErrorRules))
	rules = append(rules, lpCommonErrorRules...)
	rules = append(rules, lpSubmitExtraErrorRules...)
	respondWithMappedError(c, err, rules, response.CodeInternal, "error.lp_submit_failed")
}
