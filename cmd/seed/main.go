package main

import (
	"time"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// データベース接続
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// デモスカウト
	hash, err := bcrypt.GenerateFromPassword([]byte("scout1234"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash password: %v", err)
	}
	scouts := []models.Scout{
		{
			Email:        "sato@example.com",
			PasswordHash: string(hash),
			DisplayName:  "佐藤",
			Role:         "scout",
			ShareRate:    70,
		},
		{
			Email:        "suzuki@example.com",
			PasswordHash: string(hash),
			DisplayName:  "鈴木",
			Role:         "scout",
			ShareRate:    75,
		},
		{
			Email:        "master@example.com",
			PasswordHash: string(hash),
			DisplayName:  "マスター",
			Role:         "admin",
			ShareRate:    70,
		},
	}
	for i := range scouts {
		scout := scouts[i]
		var existing models.Scout
		if err := models.DB.Where("email = ?", scout.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&scout).Error; err != nil {
				stdLog.Printf("Failed to create scout %s: %v", scout.Email, err)
			} else {
				stdLog.Printf("Created scout: %s", scout.Email)
			}
		} else {
			stdLog.Printf("Scout already exists: %s", scout.Email)
		}
	}

	// デモ店舗
	shops := []models.Shop{
		{
			Name:         "クラブA（歌舞伎町）",
			Area:         "新宿",
			SBType:       constants.SBTypeSalesPercentage,
			SBRate:       models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			PaymentCycle: constants.PaymentCycleMonthly,
			HiringStatus: constants.ShopHiringStatusActive,
			Notes:        "売上の20%をSBとして支給",
		},
		{
			Name:         "ラウンジB（銀座）",
			Area:         "銀座",
			SBType:       constants.SBTypeSalaryPercentage,
			SBRate:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			PaymentCycle: constants.PaymentCycleBimonthly,
			HiringStatus: constants.ShopHiringStatusActive,
		},
		{
			Name:         "バーC（六本木）",
			Area:         "六本木",
			SBType:       constants.SBTypeFixed,
			SBRate:       models.NewMoneyFromDecimal(decimal.NewFromInt(50000)),
			PaymentCycle: constants.PaymentCycleMonthly,
			HiringStatus: constants.ShopHiringStatusLimited,
			Notes:        "採用1名につき固定5万円",
		},
	}
	for i := range shops {
		shop := shops[i]
		var existing models.Shop
		if err := models.DB.Where("name = ?", shop.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&shop).Error; err != nil {
				stdLog.Printf("Failed to create shop %s: %v", shop.Name, err)
			} else {
				stdLog.Printf("Created shop: %s", shop.Name)
			}
		} else {
			stdLog.Printf("Shop already exists: %s", shop.Name)
		}
	}

	// デモリンク（佐藤→クラブA の紹介リンクとアプリ招待リンク）
	var scout models.Scout
	if err := models.DB.Where("email = ?", "sato@example.com").First(&scout).Error; err != nil {
		stdLog.Fatalf("Failed to load demo scout: %v", err)
	}
	var shop models.Shop
	if err := models.DB.Where("name = ?", "クラブA（歌舞伎町）").First(&shop).Error; err != nil {
		stdLog.Fatalf("Failed to load demo shop: %v", err)
	}

	links := []models.ScoutLink{
		{
			ScoutID:    scout.ID,
			ShopID:     &shop.ID,
			Kind:       constants.LinkKindRecruit,
			Code:       "RCT-DEMO0001",
			LPHeadline: "歌舞伎町の人気店で高収入",
			IsActive:   true,
		},
		{
			ScoutID:  scout.ID,
			Kind:     constants.LinkKindAppInvite,
			Code:     "APP-DEMO0001",
			IsActive: true,
		},
	}
	for i := range links {
		link := links[i]
		var existing models.ScoutLink
		if err := models.DB.Where("code = ?", link.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&link).Error; err != nil {
				stdLog.Printf("Failed to create link %s: %v", link.Code, err)
			} else {
				stdLog.Printf("Created link: %s", link.Code)
			}
		} else {
			stdLog.Printf("Link already exists: %s", link.Code)
		}
	}

	stdLog.Printf("Seed completed at %s", time.Now().Format(time.RFC3339))
}
