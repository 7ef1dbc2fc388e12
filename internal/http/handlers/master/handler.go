package master

import "github.com/scouttrack/internal/provider"

// Handler マスター管理 API ハンドラ
// 説明：運営向けの全体分析・応募管理・店舗管理・権限管理を担当する。
type Handler struct {
	*provider.Container
}

// New マスター管理ハンドラを生成する
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
