package service

import "errors"

// サービス層の番兵エラー。ハンドラ側で応答コードと i18n キーに対応付ける。
var (
	ErrNotFound           = errors.New("対象が見つかりません")
	ErrForbidden          = errors.New("権限がありません")
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")
	ErrInvalidPassword    = errors.New("パスワードが正しくありません")
	ErrWeakPassword       = errors.New("パスワードが強度要件を満たしていません")
	ErrAccountDisabled    = errors.New("アカウントが無効化されています")
	ErrEmailExists        = errors.New("メールアドレスは既に登録されています")

	ErrScoutNotFound           = errors.New("スカウトが見つかりません")
	ErrShopNotFound            = errors.New("店舗が見つかりません")
	ErrShopNameRequired        = errors.New("店舗名は必須です")
	ErrShopHiringStatusInvalid = errors.New("採用状況の値が不正です")
	ErrCastNotFound            = errors.New("キャストが見つかりません")

	ErrLinkNotFound      = errors.New("リンクが見つかりません")
	ErrLinkKindInvalid   = errors.New("リンク種別が不正です")
	ErrLinkCodeExhausted = errors.New("リンクコードを生成できませんでした")
	ErrLinkDisabled      = errors.New("リンクが無効化されています")
	ErrLinkForceDisabled = errors.New("リンクは管理者により停止されています")

	ErrConversionNotFound      = errors.New("応募記録が見つかりません")
	ErrConversionStatusInvalid = errors.New("ステータスの値が不正です")

	ErrSBTypeInvalid        = errors.New("SB計算方式が不正です")
	ErrSBRateInvalid        = errors.New("SB料率が不正です")
	ErrSalesInvalid         = errors.New("想定月間売上の値が不正です")
	ErrShareRateInvalid     = errors.New("分配率が不正です")
	ErrPaymentCycleInvalid  = errors.New("支払サイクルが不正です")
	ErrRankingMetricInvalid = errors.New("ランキング指標が不正です")

	ErrCaptchaRequired      = errors.New("認証コードが必要です")
	ErrCaptchaInvalid       = errors.New("認証コードが正しくありません")
	ErrCaptchaConfigInvalid = errors.New("認証コードの設定が不正です")
)
