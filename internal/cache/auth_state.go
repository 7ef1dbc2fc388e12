package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/scouttrack/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// ScoutAuthState スカウト認証スナップショット
// token_invalid_before は Unix 秒。0 は未設定を表す。
// 認証ミドルウェアが毎回 DB を引かずに済むよう Redis に置く。
type ScoutAuthState struct {
	ScoutID            uint   `json:"scout_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Status             string `json:"status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func scoutAuthStateKey(scoutID uint) string {
	return fmt.Sprintf("auth:scout:%d", scoutID)
}

// BuildScoutAuthState スカウトモデルから認証スナップショットを構築する
func BuildScoutAuthState(scout *models.Scout) *ScoutAuthState {
	if scout == nil {
		return nil
	}
	state := &ScoutAuthState{
		ScoutID:      scout.ID,
		Email:        scout.Email,
		Role:         scout.Role,
		Status:       scout.Status,
		TokenVersion: scout.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if scout.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = scout.TokenInvalidBefore.Unix()
	}
	return state
}

// GetScoutAuthState スカウト認証スナップショットを取得する
func GetScoutAuthState(ctx context.Context, scoutID uint) (*ScoutAuthState, bool, error) {
	if scoutID == 0 {
		return nil, false, nil
	}
	var state ScoutAuthState
	hit, err := GetJSON(ctx, scoutAuthStateKey(scoutID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetScoutAuthState スカウト認証スナップショットを書き込む
func SetScoutAuthState(ctx context.Context, state *ScoutAuthState) error {
	if state == nil || state.ScoutID == 0 {
		return nil
	}
	return SetJSON(ctx, scoutAuthStateKey(state.ScoutID), state, authStateCacheTTL)
}

// DelScoutAuthState スカウト認証スナップショットを削除する
func DelScoutAuthState(ctx context.Context, scoutID uint) error {
	if scoutID == 0 {
		return nil
	}
	return Del(ctx, scoutAuthStateKey(scoutID))
}
