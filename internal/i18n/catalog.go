package i18n

var catalog = map[string]map[string]string{
	LocaleJA: {
		"common.success": "成功しました",

		"error.bad_request":            "リクエストが不正です",
		"error.unauthorized":           "認証が必要です",
		"error.forbidden":              "この操作を行う権限がありません",
		"error.not_found":              "対象が見つかりません",
		"error.internal":               "サーバ内部エラーが発生しました",
		"error.rate_limited":           "リクエストが多すぎます。しばらくしてから再試行してください",
		"error.login_too_many":         "ログイン試行が多すぎます。%d秒後に再試行してください",
		"error.rate_limit_unavailable": "流量制限の判定に失敗しました",

		"error.invalid_credentials": "メールアドレスまたはパスワードが正しくありません",
		"error.account_disabled":    "このアカウントは無効化されています",
		"error.token_invalid":       "トークンが無効です",
		"error.token_revoked":       "トークンは失効しています",
		"error.password_weak":       "パスワードが強度要件を満たしていません",

		"error.jwt_secret_missing":  "JWT シークレットが設定されていません",
		"error.auth_header_missing": "Authorization ヘッダがありません",
		"error.auth_header_invalid": "Authorization ヘッダの形式が不正です",

		"error.password_min_length":      "パスワードは%d文字以上で入力してください",
		"error.password_require_upper":   "パスワードには大文字を含めてください",
		"error.password_require_lower":   "パスワードには小文字を含めてください",
		"error.password_require_number":  "パスワードには数字を含めてください",
		"error.password_require_special": "パスワードには記号を含めてください",

		"error.captcha_required":        "認証コードを入力してください",
		"error.captcha_invalid":         "認証コードが正しくありません",
		"error.captcha_verify_failed":   "認証コードの検証に失敗しました",
		"error.captcha_unavailable":     "認証コードは現在利用できません",
		"error.captcha_generate_failed": "認証コードの生成に失敗しました",
		"error.login_failed":            "ログインに失敗しました",
		"error.lp_fetch_failed":         "ページ情報の取得に失敗しました",
		"error.lp_submit_failed":        "応募の送信に失敗しました",
		"error.captcha_config_invalid":  "認証コードの設定が不正です",

		"error.scout_not_found":        "スカウトが見つかりません",
		"error.scout_fetch_failed":     "スカウト情報の取得に失敗しました",
		"error.scout_id_invalid":       "スカウトIDが不正です",
		"error.scout_id_type_invalid":  "スカウトIDの型が不正です",
		"error.password_incorrect":     "現在のパスワードが正しくありません",
		"error.password_change_failed": "パスワードの変更に失敗しました",
		"error.commission_calc_failed": "SB計算に失敗しました",
		"error.scout_save_failed":      "スカウト情報の保存に失敗しました",
		"error.email_already_taken":    "このメールアドレスは既に登録されています",

		"error.shop_not_found":        "店舗が見つかりません",
		"error.shop_fetch_failed":     "店舗情報の取得に失敗しました",
		"error.shop_save_failed":      "店舗情報の保存に失敗しました",
		"error.shop_id_invalid":       "店舗IDが不正です",
		"error.shop_name_required":    "店舗名は必須です",
		"error.hiring_status_invalid": "採用状況の値が不正です",

		"error.link_not_found":      "リンクが見つかりません",
		"error.link_fetch_failed":   "リンク情報の取得に失敗しました",
		"error.link_save_failed":    "リンクの保存に失敗しました",
		"error.link_kind_invalid":   "リンク種別が不正です",
		"error.link_code_exhausted": "リンクコードの生成に失敗しました。再試行してください",
		"error.link_disabled":       "このリンクは無効化されています",
		"error.link_force_disabled": "このリンクは管理者により停止されています",

		"error.conversion_not_found":      "応募記録が見つかりません",
		"error.conversion_fetch_failed":   "応募記録の取得に失敗しました",
		"error.conversion_save_failed":    "応募記録の保存に失敗しました",
		"error.conversion_status_invalid": "ステータスの値が不正です",
		"error.conversion_id_invalid":     "応募記録IDが不正です",

		"error.cast_not_found":    "キャストが見つかりません",
		"error.cast_save_failed":  "キャスト情報の保存に失敗しました",
		"error.cast_fetch_failed": "キャスト情報の取得に失敗しました",

		"error.sb_type_invalid":        "SB計算方式が不正です",
		"error.sb_rate_invalid":        "SB料率が不正です",
		"error.sales_invalid":          "想定月間売上の値が不正です",
		"error.share_rate_invalid":     "分配率が不正です",
		"error.payment_cycle_invalid":  "支払サイクルが不正です",
		"error.ranking_metric_invalid": "ランキング指標が不正です",

		"error.tracking_fetch_failed": "集計データの取得に失敗しました",
		"error.authz_fetch_failed":    "権限情報の取得に失敗しました",
		"error.authz_update_failed":   "権限情報の更新に失敗しました",
		"error.role_not_found":        "ロールが見つかりません",
	},
	LocaleEN: {
		"common.success": "success",

		"error.bad_request":            "invalid request",
		"error.unauthorized":           "authentication required",
		"error.forbidden":              "you are not allowed to perform this action",
		"error.not_found":              "resource not found",
		"error.internal":               "internal server error",
		"error.rate_limited":           "too many requests, please retry later",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limit check failed",

		"error.invalid_credentials": "email or password is incorrect",
		"error.account_disabled":    "this account has been disabled",
		"error.token_invalid":       "invalid token",
		"error.token_revoked":       "token has been revoked",
		"error.password_weak":       "password does not meet the strength requirements",

		"error.jwt_secret_missing":  "jwt secret is not configured",
		"error.auth_header_missing": "authorization header is missing",
		"error.auth_header_invalid": "authorization header is malformed",

		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a number",
		"error.password_require_special": "password must contain a special character",

		"error.captcha_required":        "captcha is required",
		"error.captcha_invalid":         "captcha is incorrect",
		"error.captcha_verify_failed":   "captcha verification failed",
		"error.captcha_unavailable":     "captcha is currently unavailable",
		"error.captcha_generate_failed": "failed to generate captcha",
		"error.login_failed":            "login failed",
		"error.lp_fetch_failed":         "failed to load landing page",
		"error.lp_submit_failed":        "failed to submit application",
		"error.captcha_config_invalid":  "captcha configuration is invalid",

		"error.scout_not_found":        "scout not found",
		"error.scout_fetch_failed":     "failed to fetch scout",
		"error.scout_id_invalid":       "invalid scout id",
		"error.scout_id_type_invalid":  "invalid scout id type",
		"error.password_incorrect":     "current password is incorrect",
		"error.password_change_failed": "failed to change password",
		"error.commission_calc_failed": "failed to calculate commission",
		"error.scout_save_failed":      "failed to save scout",
		"error.email_already_taken":    "email address is already registered",

		"error.shop_not_found":        "shop not found",
		"error.shop_fetch_failed":     "failed to fetch shop",
		"error.shop_save_failed":      "failed to save shop",
		"error.shop_id_invalid":       "invalid shop id",
		"error.shop_name_required":    "shop name is required",
		"error.hiring_status_invalid": "invalid hiring status",

		"error.link_not_found":      "link not found",
		"error.link_fetch_failed":   "failed to fetch link",
		"error.link_save_failed":    "failed to save link",
		"error.link_kind_invalid":   "invalid link kind",
		"error.link_code_exhausted": "failed to generate a link code, please retry",
		"error.link_disabled":       "this link has been disabled",
		"error.link_force_disabled": "this link has been suspended by an administrator",

		"error.conversion_not_found":      "conversion not found",
		"error.conversion_fetch_failed":   "failed to fetch conversion",
		"error.conversion_save_failed":    "failed to save conversion",
		"error.conversion_status_invalid": "invalid status value",
		"error.conversion_id_invalid":     "invalid conversion id",

		"error.cast_not_found":    "cast not found",
		"error.cast_save_failed":  "failed to save cast",
		"error.cast_fetch_failed": "failed to fetch cast",

		"error.sb_type_invalid":        "invalid commission type",
		"error.sb_rate_invalid":        "invalid commission rate",
		"error.sales_invalid":          "invalid estimated monthly sales",
		"error.share_rate_invalid":     "invalid share rate",
		"error.payment_cycle_invalid":  "invalid payment cycle",
		"error.ranking_metric_invalid": "invalid ranking metric",

		"error.tracking_fetch_failed": "failed to fetch tracking data",
		"error.authz_fetch_failed":    "failed to fetch authorization data",
		"error.authz_update_failed":   "failed to update authorization data",
		"error.role_not_found":        "role not found",
	},
}
