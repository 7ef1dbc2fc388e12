package scout

import "github.com/scouttrack/internal/provider"

// Handler スカウト側 API ハンドラ
// 説明：ログイン済みスカウト本人のリンク・応募・収入系 API を担当する。
type Handler struct {
	*provider.Container
}

// New スカウト側ハンドラを生成する
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
