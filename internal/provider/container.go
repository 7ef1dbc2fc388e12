package provider

import (
	"github.com/scouttrack/internal/authz"
	"github.com/scouttrack/internal/cache"
	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/queue"
	"github.com/scouttrack/internal/repository"
	"github.com/scouttrack/internal/service"
)

// Container 依存注入コンテナ
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ScoutRepo         repository.ScoutRepository
	ShopRepo          repository.ShopRepository
	LinkRepo          repository.LinkRepository
	ConversionRepo    repository.ConversionRepository
	CastRepo          repository.CastRepository
	TrackingRepo      repository.TrackingRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	CaptchaService    *service.CaptchaService
	CommissionService *service.CommissionService
	LinkService       *service.LinkService
	FunnelService     *service.FunnelService
	ConversionService *service.ConversionService
	TrackingService   *service.TrackingService
	ShopService       *service.ShopService
	AuthzAuditService *service.AuthzAuditService
}

// NewContainer コンテナを初期化する
func NewContainer(cfg *config.Config) *Container {
	// キャッシュ初期化
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// キューのクライアント初期化
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. Repositories 初期化
	c.initRepositories()

	// 2. Services 初期化
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ScoutRepo = repository.NewScoutRepository(db)
	c.ShopRepo = repository.NewShopRepository(db)
	c.LinkRepo = repository.NewLinkRepository(db)
	c.ConversionRepo = repository.NewConversionRepository(db)
	c.CastRepo = repository.NewCastRepository(db)
	c.TrackingRepo = repository.NewTrackingRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	// キュー無効時は enqueuer を nil にして同期フォールバックさせる
	var enqueuer service.TaskEnqueuer
	if c.QueueClient != nil && c.QueueClient.Enabled() {
		enqueuer = c.QueueClient
	}

	c.AuthService = service.NewAuthService(c.Config, c.ScoutRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CommissionService = service.NewCommissionService(c.Config)
	c.LinkService = service.NewLinkService(c.Config, c.LinkRepo, c.ScoutRepo, c.ShopRepo)
	c.FunnelService = service.NewFunnelService(c.Config, c.LinkRepo, c.ConversionRepo, enqueuer)
	c.ConversionService = service.NewConversionService(c.ConversionRepo, c.ShopRepo, c.CastRepo, c.CommissionService, enqueuer)
	c.TrackingService = service.NewTrackingService(c.Config, c.TrackingRepo, c.ScoutRepo, c.LinkRepo, c.ConversionRepo)
	c.ShopService = service.NewShopService(c.ShopRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
