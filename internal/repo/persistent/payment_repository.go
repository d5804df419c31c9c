package persistent

import (
	"errors"

	"velvetroom/internal/entity"
	"velvetroom/internal/model"

	"gorm.io/gorm"
)

// ErrEventAlreadyProcessed signals that the webhook event id already exists in
// the ledger. Callers acknowledge the delivery without reapplying it.
var ErrEventAlreadyProcessed = errors.New("webhook event already processed")

type PaymentRepository interface {
	GetCompletedPurchase(userID int) (*entity.GalleryPurchase, error)
	HasCompletedPurchase(userID int) (bool, error)
	EventProcessed(eventID string) (bool, error)
	// RecordPurchase inserts the entitlement row and the ledger row in one
	// transaction. Returns ErrEventAlreadyProcessed on duplicate event id.
	RecordPurchase(purchase *entity.GalleryPurchase, event *entity.WebhookEvent) error
	// RecordTip does the same for tips.
	RecordTip(tip *entity.Tip, event *entity.WebhookEvent) error
	RecentTippers(limit int) ([]*entity.TipperEntry, error)
	TipStats() (*entity.TipStats, error)
	UserTipTotals(userID int) (count int64, totalCents int64, err error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetCompletedPurchase(userID int) (*entity.GalleryPurchase, error) {
	var purchaseModel model.GalleryPurchaseModel
	err := r.db.Where("user_id = ? AND status = ?", userID, entity.StatusCompleted).
		First(&purchaseModel).Error
	if err != nil {
		return nil, err
	}
	return ToPurchaseEntity(&purchaseModel), nil
}

func (r *paymentRepository) HasCompletedPurchase(userID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.GalleryPurchaseModel{}).
		Where("user_id = ? AND status = ?", userID, entity.StatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepository) EventProcessed(eventID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WebhookEventModel{}).
		Where("stripe_event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepository) RecordPurchase(purchase *entity.GalleryPurchase, event *entity.WebhookEvent) error {
	purchaseModel := ToPurchaseModel(purchase)
	eventModel := ToWebhookEventModel(event)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(eventModel).Error; err != nil {
			return err
		}
		return tx.Create(purchaseModel).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEventAlreadyProcessed
		}
		return err
	}

	*purchase = *ToPurchaseEntity(purchaseModel)
	return nil
}

func (r *paymentRepository) RecordTip(tip *entity.Tip, event *entity.WebhookEvent) error {
	tipModel := ToTipModel(tip)
	eventModel := ToWebhookEventModel(event)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(eventModel).Error; err != nil {
			return err
		}
		return tx.Create(tipModel).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEventAlreadyProcessed
		}
		return err
	}

	*tip = *ToTipEntity(tipModel)
	return nil
}

func (r *paymentRepository) RecentTippers(limit int) ([]*entity.TipperEntry, error) {
	var entries []*entity.TipperEntry
	err := r.db.Table("tips").
		Select("users.username, users.date_of_birth, tips.amount_cents, tips.created_at").
		Joins("JOIN users ON users.id = tips.user_id").
		Where("tips.status = ? AND tips.is_anonymous = ?", entity.StatusCompleted, false).
		Order("tips.created_at DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *paymentRepository) TipStats() (*entity.TipStats, error) {
	var stats entity.TipStats
	err := r.db.Table("tips").
		Select("COUNT(*) AS tip_count, COALESCE(SUM(amount_cents), 0) AS total_amount_cents").
		Where("status = ?", entity.StatusCompleted).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *paymentRepository) UserTipTotals(userID int) (int64, int64, error) {
	var row struct {
		TipCount         int64
		TotalAmountCents int64
	}
	err := r.db.Table("tips").
		Select("COUNT(*) AS tip_count, COALESCE(SUM(amount_cents), 0) AS total_amount_cents").
		Where("user_id = ? AND status = ?", userID, entity.StatusCompleted).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.TipCount, row.TotalAmountCents, nil
}
