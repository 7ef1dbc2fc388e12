package service

import (
	"strings"
	"time"

	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"

	"gorm.io/gorm"
)

// 種別ごとの有効ステータス
var recruitStatuses = map[string]bool{
	constants.ConversionStatusSubmitted:   true,
	constants.ConversionStatusContacted:   true,
	constants.ConversionStatusInterviewed: true,
	constants.ConversionStatusTrial:       true,
	constants.ConversionStatusHired:       true,
	constants.ConversionStatusActive:      true,
	constants.ConversionStatusRejected:    true,
}

var appStatuses = map[string]bool{
	constants.ConversionStatusSubmitted:  true,
	constants.ConversionStatusRegistered: true,
	constants.ConversionStatusActive:     true,
	constants.ConversionStatusChurned:    true,
}

// ステータス→マイルストーン列の対応
var statusMilestones = map[string]string{
	constants.ConversionStatusContacted:   "contacted_at",
	constants.ConversionStatusInterviewed: "interviewed_at",
	constants.ConversionStatusTrial:       "trial_at",
	constants.ConversionStatusHired:       "hired_at",
	constants.ConversionStatusRegistered:  "registered_at",
}

// ConversionService 応募記録管理サービス
type ConversionService struct {
	convRepo   repository.ConversionRepository
	shopRepo   repository.ShopRepository
	castRepo   repository.CastRepository
	commission *CommissionService
	enqueuer   TaskEnqueuer
}

// NewConversionService 応募記録サービスを生成する
func NewConversionService(convRepo repository.ConversionRepository, shopRepo repository.ShopRepository, castRepo repository.CastRepository, commission *CommissionService, enqueuer TaskEnqueuer) *ConversionService {
	return &ConversionService{
		convRepo:   convRepo,
		shopRepo:   shopRepo,
		castRepo:   castRepo,
		commission: commission,
		enqueuer:   enqueuer,
	}
}

// List 応募記録一覧を取得する
func (s *ConversionService) List(filter repository.ConversionListFilter) ([]models.LinkConversion, int64, error) {
	return s.convRepo.List(filter)
}

// Get 応募記録を取得する。scoutID が 0 以外なら所有チェックを行う。
func (s *ConversionService) Get(id, scoutID uint) (*models.LinkConversion, error) {
	conversion, err := s.convRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if conversion == nil {
		return nil, ErrConversionNotFound
	}
	if scoutID != 0 && conversion.ScoutID != scoutID {
		return nil, ErrConversionNotFound
	}
	return conversion, nil
}

// UpdateStatusInput ステータス更新の入力
type UpdateStatusInput struct {
	Status                string
	Notes                 string
	EstimatedMonthlySales *int64
}

// UpdateStatus 応募のステータスを進める。マイルストーン時刻は最初の到達時のみ刻む。
// hired で想定売上が与えられた場合は店舗の SB 条件でスカウト収入を確定する。
// active でキャストが紐づいている場合は稼働区分の同期タスクを投入する。
func (s *ConversionService) UpdateStatus(id uint, scoutID uint, input UpdateStatusInput) (*models.LinkConversion, error) {
	conversion, err := s.Get(id, scoutID)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	valid := recruitStatuses
	if conversion.Kind == constants.ConversionKindAppRegister {
		valid = appStatuses
	}
	if !valid[status] {
		return nil, ErrConversionStatusInvalid
	}

	now := time.Now()
	err = s.convRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.convRepo.WithTx(tx)

		updates := map[string]interface{}{
			"status":     status,
			"notes":      input.Notes,
			"updated_at": now,
		}
		if err := repo.Updates(conversion.ID, updates); err != nil {
			return err
		}

		if column, ok := statusMilestones[status]; ok {
			if err := repo.StampMilestone(conversion.ID, column, now); err != nil {
				return err
			}
		}

		if status == constants.ConversionStatusHired && input.EstimatedMonthlySales != nil {
			if err := s.applyHiredCommission(repo, conversion, *input.EstimatedMonthlySales, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == constants.ConversionStatusActive && conversion.CastID != nil {
		s.syncCastEmployment(conversion)
	}

	logger.Infow("conversion_status_updated",
		"conversion_id", conversion.ID,
		"from", conversion.Status,
		"to", status,
	)
	return s.convRepo.GetByID(conversion.ID)
}

// applyHiredCommission 採用確定時に店舗の SB 条件でスカウト収入を算出して保存する
func (s *ConversionService) applyHiredCommission(repo repository.ConversionRepository, conversion *models.LinkConversion, sales int64, now time.Time) error {
	if conversion.ShopID == nil {
		return nil
	}
	shop, err := s.shopRepo.GetByID(*conversion.ShopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return nil
	}

	shareRate := conversion.ScoutShareRate
	if shareRate <= 0 {
		shareRate = 70
	}

	calc, err := s.commission.Calculate(CommissionInput{
		EstimatedMonthlySales: sales,
		SBType:                shop.SBType,
		SBRate:                shop.SBRate.Decimal,
		ScoutShareRate:        shareRate,
		PaymentCycle:          shop.PaymentCycle,
	})
	if err != nil {
		return err
	}

	estimated := models.NewMoneyFromInt(sales)
	return repo.Updates(conversion.ID, map[string]interface{}{
		"estimated_monthly_sales": estimated,
		"sb_rate":                 shop.SBRate,
		"sb_amount":               calc.SBTotal,
		"scout_share_rate":        shareRate,
		"scout_income":            calc.ScoutIncome,
		"updated_at":              now,
	})
}

// syncCastEmployment キャスト稼働区分の同期。キュー未設定時は直接更新する。
func (s *ConversionService) syncCastEmployment(conversion *models.LinkConversion) {
	if s.enqueuer != nil {
		err := s.enqueuer.EnqueueCastEmploymentSync(conversion.ID, *conversion.CastID)
		if err == nil {
			return
		}
		logger.Warnw("cast_employment_sync_enqueue_failed", "error", err, "conversion_id", conversion.ID)
	}
	if err := s.castRepo.UpdateEmployment(*conversion.CastID, constants.CastCategoryActive, conversion.ShopID, time.Now()); err != nil {
		logger.Errorw("cast_employment_sync_failed", "error", err, "cast_id", *conversion.CastID)
	}
}

// SBUpdateInput SB金額の手動調整入力
type SBUpdateInput struct {
	SBAmount    int64
	ScoutIncome int64
	IsSBPaid    bool
	Notes       string
}

// UpdateSB SB金額を手動調整する
func (s *ConversionService) UpdateSB(id uint, input SBUpdateInput) (*models.LinkConversion, error) {
	conversion, err := s.Get(id, 0)
	if err != nil {
		return nil, err
	}
	if input.SBAmount < 0 || input.ScoutIncome < 0 {
		return nil, ErrSBRateInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"sb_amount":    models.NewMoneyFromInt(input.SBAmount),
		"scout_income": models.NewMoneyFromInt(input.ScoutIncome),
		"is_sb_paid":   input.IsSBPaid,
		"notes":        input.Notes,
		"updated_at":   now,
	}
	if input.IsSBPaid {
		updates["sb_paid_at"] = now
	}
	if err := s.convRepo.Updates(conversion.ID, updates); err != nil {
		return nil, err
	}
	return s.convRepo.GetByID(conversion.ID)
}

// BulkMarkPaid 複数の応募を支払済みにする。支払済みの行は読み飛ばし、処理件数を返す。
func (s *ConversionService) BulkMarkPaid(ids []uint, notes string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	paid := 0
	now := time.Now()
	err := s.convRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.convRepo.WithTx(tx)
		for _, id := range ids {
			marked, err := repo.MarkPaid(id, now)
			if err != nil {
				return err
			}
			if !marked {
				continue
			}
			paid++
			if notes != "" {
				if err := s.appendNotes(repo, id, notes, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Infow("sb_bulk_paid", "requested", len(ids), "paid", paid)
	return paid, nil
}

// appendNotes 既存の備考に追記する
func (s *ConversionService) appendNotes(repo repository.ConversionRepository, id uint, notes string, now time.Time) error {
	conversion, err := repo.GetByIDForUpdate(id)
	if err != nil || conversion == nil {
		return err
	}
	merged := notes
	if conversion.Notes != "" {
		merged = conversion.Notes + "\n" + notes
	}
	return repo.Updates(id, map[string]interface{}{
		"notes":      merged,
		"updated_at": now,
	})
}
