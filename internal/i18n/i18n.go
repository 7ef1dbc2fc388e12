package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 対応ロケール
const (
	LocaleJA = "ja"
	LocaleEN = "en"
)

// DefaultLocale 既定ロケール
const DefaultLocale = LocaleJA

// Normalize ロケール表記を正規化する
func Normalize(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(normalized, "en"):
		return LocaleEN
	case strings.HasPrefix(normalized, "ja"):
		return LocaleJA
	default:
		return DefaultLocale
	}
}

// ResolveLocale リクエストからロケールを決定する
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	if header := strings.TrimSpace(c.GetHeader("Accept-Language")); header != "" {
		first := header
		if idx := strings.IndexAny(header, ",;"); idx >= 0 {
			first = header[:idx]
		}
		return Normalize(first)
	}
	return DefaultLocale
}

// T キーに対応する文言を返す
func T(locale, key string) string {
	normalized := Normalize(locale)
	if messages, ok := catalog[normalized]; ok {
		if message, ok := messages[key]; ok {
			return message
		}
	}
	if normalized != DefaultLocale {
		if message, ok := catalog[DefaultLocale][key]; ok {
			return message
		}
	}
	return key
}

// Sprintf キーに対応する文言を書式化して返す
func Sprintf(locale, key string, args ...interface{}) string {
	if len(args) == 0 {
		return T(locale, key)
	}
	return fmt.Sprintf(T(locale, key), args...)
}
