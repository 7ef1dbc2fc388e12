package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/provider"
	"github.com/scouttrack/internal/queue"
	"github.com/scouttrack/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Scout{},
		&models.Shop{},
		&models.ScoutLink{},
		&models.LinkClick{},
		&models.LinkConversion{},
		&models.Cast{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	container := &provider.Container{
		LinkRepo:       repository.NewLinkRepository(db),
		ConversionRepo: repository.NewConversionRepository(db),
		CastRepo:       repository.NewCastRepository(db),
	}
	return NewConsumer(container), db
}

func TestHandleCastEmploymentSync(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	shopID := uint(7)
	cast := models.Cast{Name: "テストキャスト", Category: constants.CastCategoryProspect}
	if err := db.Create(&cast).Error; err != nil {
		t.Fatalf("create cast failed: %v", err)
	}
	conversion := models.LinkConversion{
		LinkID:      1,
		ScoutID:     1,
		ShopID:      &shopID,
		Kind:        constants.ConversionKindRecruitApply,
		Status:      constants.ConversionStatusActive,
		CastID:      &cast.ID,
		SubmittedAt: time.Now(),
	}
	if err := db.Create(&conversion).Error; err != nil {
		t.Fatalf("create conversion failed: %v", err)
	}

	payload, err := json.Marshal(queue.CastEmploymentSyncPayload{ConversionID: conversion.ID, CastID: cast.ID})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	task := asynq.NewTask(queue.TaskCastEmploymentSync, payload)
	if err := consumer.handleCastEmploymentSync(context.Background(), task); err != nil {
		t.Fatalf("handle cast employment sync failed: %v", err)
	}

	var updated models.Cast
	if err := db.First(&updated, cast.ID).Error; err != nil {
		t.Fatalf("reload cast failed: %v", err)
	}
	if updated.Category != constants.CastCategoryActive {
		t.Fatalf("category want active, got=%s", updated.Category)
	}
	if updated.ShopID == nil || *updated.ShopID != shopID {
		t.Fatalf("shop id want %d, got=%v", shopID, updated.ShopID)
	}
	if updated.EmployedAt == nil {
		t.Fatalf("employed_at should be set")
	}
}

func TestHandleCastEmploymentSyncSkipsNonActiveConversion(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	cast := models.Cast{Name: "待機キャスト", Category: constants.CastCategoryProspect}
	if err := db.Create(&cast).Error; err != nil {
		t.Fatalf("create cast failed: %v", err)
	}
	conversion := models.LinkConversion{
		LinkID:      1,
		ScoutID:     1,
		Kind:        constants.ConversionKindRecruitApply,
		Status:      constants.ConversionStatusHired,
		CastID:      &cast.ID,
		SubmittedAt: time.Now(),
	}
	if err := db.Create(&conversion).Error; err != nil {
		t.Fatalf("create conversion failed: %v", err)
	}

	payload, err := json.Marshal(queue.CastEmploymentSyncPayload{ConversionID: conversion.ID, CastID: cast.ID})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	task := asynq.NewTask(queue.TaskCastEmploymentSync, payload)
	if err := consumer.handleCastEmploymentSync(context.Background(), task); err != nil {
		t.Fatalf("handle should skip without error: %v", err)
	}

	var updated models.Cast
	if err := db.First(&updated, cast.ID).Error; err != nil {
		t.Fatalf("reload cast failed: %v", err)
	}
	if updated.Category != constants.CastCategoryProspect {
		t.Fatalf("category should stay prospect, got=%s", updated.Category)
	}
}

func TestHandleLinkClickAuditMissingLink(t *testing.T) {
	consumer, _ := setupWorkerTest(t)

	payload, err := json.Marshal(queue.LinkClickAuditPayload{LinkID: 999, ClickID: 1})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	task := asynq.NewTask(queue.TaskLinkClickAudit, payload)
	if err := consumer.handleLinkClickAudit(context.Background(), task); err != nil {
		t.Fatalf("missing link should not error: %v", err)
	}
}
