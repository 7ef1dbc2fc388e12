package constants

// スカウト権限ロール定数
const (
	ScoutRoleScout = "scout"
	ScoutRoleAdmin = "admin"
)

// スカウトアカウント状態定数
const (
	ScoutStatusActive   = "active"
	ScoutStatusDisabled = "disabled"
)

// リンク種別定数
const (
	LinkKindRecruit   = "recruit"
	LinkKindAppInvite = "app_invite"
)

// リンクコード接頭辞定数
const (
	LinkCodePrefixRecruit   = "RCT"
	LinkCodePrefixAppInvite = "APP"
)

// コンバージョン種別定数
const (
	ConversionKindRecruitApply = "recruit_apply"
	ConversionKindAppRegister  = "app_register"
)

// コンバージョンステータス定数（recruit_apply）
const (
	ConversionStatusSubmitted   = "submitted"
	ConversionStatusContacted   = "contacted"
	ConversionStatusInterviewed = "interviewed"
	ConversionStatusTrial       = "trial"
	ConversionStatusHired       = "hired"
	ConversionStatusActive      = "active"
	ConversionStatusRejected    = "rejected"
)

// コンバージョンステータス定数（app_register）
const (
	ConversionStatusRegistered = "registered"
	ConversionStatusChurned    = "churned"
)

// SBタイプ定数
const (
	SBTypeSalesPercentage  = "sales_percentage"
	SBTypeSalaryPercentage = "salary_percentage"
	SBTypeFixed            = "fixed"
)

// 支払いサイクル定数
const (
	PaymentCycleMonthly   = "monthly"
	PaymentCycleBimonthly = "bimonthly"
)

// 店舗採用ステータス定数
const (
	ShopHiringStatusActive  = "active"
	ShopHiringStatusLimited = "limited"
	ShopHiringStatusClosed  = "closed"
)

// キャスト稼働区分定数
const (
	CastCategoryProspect = "prospect"
	CastCategoryActive   = "active"
	CastCategoryRetired  = "retired"
)

// リダイレクト先パス定数
const (
	RedirectPathRecruit   = "/lp/recruit/"
	RedirectPathAppInvite = "/lp/app-invite/"
	RedirectPathDisabled  = "/lp/disabled"
)

// LPテンプレート定数
const (
	LPTemplateDefault = "default"
)

// ランキング指標定数
const (
	RankingMetricSBEarned    = "sb_earned"
	RankingMetricSubmissions = "submissions"
	RankingMetricCVR         = "cvr"
)

// アラート種別定数
const (
	AlertTypeLowCVR        = "low_cvr"
	AlertTypeHighPerformer = "high_performer"
)

// 非同期タスク定数
const (
	TaskLinkClickAudit     = "link:click_audit"
	TaskCastEmploymentSync = "cast:employment_sync"
	QueueDefault           = "default"
)

// 検証コードシーン定数
const (
	CaptchaSceneLogin    = "login"
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// SB率比較の参照レート（%）
var SBReferenceRates = []int{10, 20, 30, 50}
