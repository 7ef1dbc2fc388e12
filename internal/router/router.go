package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scouttrack/internal/authz"
	"github.com/scouttrack/internal/cache"
	"github.com/scouttrack/internal/config"
	masterhandlers "github.com/scouttrack/internal/http/handlers/master"
	publichandlers "github.com/scouttrack/internal/http/handlers/public"
	scouthandlers "github.com/scouttrack/internal/http/handlers/scout"
	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter ルーティングを初期化する
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// Handler を層ごとに初期化する
	publicHandler := publichandlers.New(c)
	scoutHandler := scouthandlers.New(c)
	masterHandler := masterhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "st"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 共通ミドルウェア
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公開接口（認証不要）
		public := apiV1.Group("/public")
		{
			public.POST("/r/:code", publicHandler.RecordLinkClick)
			public.GET("/lp/:code", publicHandler.GetLP)
			public.POST("/lp/:code/submit", publicHandler.SubmitLP)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/captcha/setting", publicHandler.GetCaptchaSetting)
		}

		// 認証
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// スカウト本人の API（JWT 必須）
		scout := apiV1.Group("")
		scout.Use(ScoutJWTAuthMiddleware(cfg.JWT.SecretKey, c.ScoutRepo))
		{
			scout.GET("/me", scoutHandler.GetMe)
			scout.PUT("/me/password", scoutHandler.ChangePassword)
			scout.POST("/links", scoutHandler.CreateLink)
			scout.GET("/links", scoutHandler.ListMyLinks)
			scout.PATCH("/links/:id/toggle", scoutHandler.ToggleLink)
			scout.GET("/dashboard", scoutHandler.GetDashboard)
			scout.GET("/conversions", scoutHandler.ListMyConversions)
			scout.GET("/conversions/:id", scoutHandler.GetMyConversion)
			scout.PATCH("/conversions/:id/status", scoutHandler.UpdateMyConversionStatus)
			scout.POST("/commission/calculate", scoutHandler.CalculateCommission)
			scout.GET("/commission/shop-rates", scoutHandler.GetShopRates)
			scout.POST("/commission/simulate", scoutHandler.SimulateCommission)
		}

		// マスター管理（JWT + RBAC）
		master := apiV1.Group("/master")
		master.Use(ScoutJWTAuthMiddleware(cfg.JWT.SecretKey, c.ScoutRepo), MasterRBACMiddleware(c.AuthzService))
		{
			// 分析
			master.GET("/overview", masterHandler.GetOverview)
			master.GET("/scouts", masterHandler.GetScoutRanking)
			master.GET("/scouts/:id", masterHandler.GetScoutDetail)
			master.GET("/daily-report", masterHandler.GetDailyReport)

			// 応募管理
			master.GET("/conversions", masterHandler.ListConversions)
			master.GET("/conversions/:id", masterHandler.GetConversion)
			master.PATCH("/conversions/:id/status", masterHandler.UpdateConversionStatus)
			master.PATCH("/conversions/:id/sb", masterHandler.UpdateConversionSB)
			master.PATCH("/conversions/bulk-pay", masterHandler.BulkMarkPaid)

			// リンク管理
			master.GET("/links", masterHandler.ListLinks)
			master.PATCH("/links/:id/force-toggle", masterHandler.ForceToggleLink)
			master.POST("/links/generate", masterHandler.GenerateLink)

			// 店舗管理
			master.GET("/shops", masterHandler.ListShops)
			master.GET("/shops/:id", masterHandler.GetShop)
			master.POST("/shops", masterHandler.CreateShop)
			master.PUT("/shops/:id", masterHandler.UpdateShop)
			master.DELETE("/shops/:id", masterHandler.DeleteShop)

			// 権限管理
			master.GET("/authz/me", masterHandler.GetAuthzMe)
			master.GET("/authz/roles", masterHandler.ListAuthzRoles)
			master.POST("/authz/roles", masterHandler.CreateAuthzRole)
			master.DELETE("/authz/roles/:role", masterHandler.DeleteAuthzRole)
			master.GET("/authz/roles/:role/policies", masterHandler.GetAuthzRolePolicies)
			master.POST("/authz/policies", masterHandler.GrantAuthzPolicy)
			master.DELETE("/authz/policies", masterHandler.RevokeAuthzPolicy)
			master.GET("/authz/scouts/:id/roles", masterHandler.GetAuthzScoutRoles)
			master.PUT("/authz/scouts/:id/roles", masterHandler.SetAuthzScoutRoles)
			master.GET("/authz/audit-logs", masterHandler.ListAuthzAuditLogs)
			master.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildMasterPermissionCatalog(r))
			})
		}
	}

	// 死活監視
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type masterPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildMasterPermissionCatalog(engine *gin.Engine) []masterPermissionCatalogItem {
	if engine == nil {
		return []masterPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]masterPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/master/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, masterPermissionCatalogItem{
			Module:     deriveMasterPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveMasterPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "master" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
