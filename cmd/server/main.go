package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/scouttrack/internal/app"
	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	printStartupBanner()

	// 設定の読み込み
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret が弱いか既定値のままです。本番環境では強いランダム鍵を設定してください")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("警告: JWT secret が弱いか既定値のままです。本番環境では変更してください")
	}

	// データベース初期化
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("データベース初期化に失敗しました: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("データベースマイグレーションに失敗しました: %v", err)
	}

	// 既定のマスターアカウント初期化
	defaultMasterEmail := os.Getenv("ST_DEFAULT_MASTER_EMAIL")
	defaultMasterPass := os.Getenv("ST_DEFAULT_MASTER_PASSWORD")
	if cfg.Server.Mode == "release" && defaultMasterPass == "" {
		stdLog.Printf("警告: ST_DEFAULT_MASTER_PASSWORD 未設定のためマスター初期化をスキップしました")
	} else if err := models.InitDefaultMaster(defaultMasterEmail, defaultMasterPass); err != nil {
		stdLog.Printf("警告: マスターアカウントの初期化に失敗しました: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "起動モード: all (既定), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("サービスの実行に失敗しました: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println("==============================================")
	fmt.Println("  ScoutTrack API - 紹介ファネル & SB 計算基盤")
	fmt.Println("==============================================")
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
