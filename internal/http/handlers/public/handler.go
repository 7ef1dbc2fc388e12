package public

import "github.com/scouttrack/internal/provider"

// Handler 公開側（訪問者・認証）API ハンドラ
// 説明：追跡リンク・ミニLP・ログインなど認証不要の入口を担当する。
type Handler struct {
	*provider.Container
}

// New 公開側ハンドラを生成する
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
