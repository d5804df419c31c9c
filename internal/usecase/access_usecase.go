package usecase

import (
	"errors"

	"gorm.io/gorm"

	"velvetroom/internal/entity"
	"velvetroom/internal/repo/persistent"
	"velvetroom/pkg/config"
)

type AccessUseCase interface {
	// Check returns the gallery access tri-state: not logged in, logged in
	// without a purchase, or purchased.
	Check(userID int, authenticated bool) (*entity.AccessStatus, error)
}

type accessUseCase struct {
	payments persistent.PaymentRepository
	cfg      *config.Config
}

func NewAccessUseCase(payments persistent.PaymentRepository, cfg *config.Config) AccessUseCase {
	return &accessUseCase{payments: payments, cfg: cfg}
}

func (uc *accessUseCase) Check(userID int, authenticated bool) (*entity.AccessStatus, error) {
	if !authenticated {
		return &entity.AccessStatus{
			HasAccess:  false,
			Reason:     entity.AccessNotLoggedIn,
			PriceCents: uc.cfg.GalleryPriceCents,
			Currency:   uc.cfg.GalleryCurrency,
		}, nil
	}

	purchase, err := uc.payments.GetCompletedPurchase(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.AccessStatus{
				HasAccess:  false,
				Reason:     entity.AccessNotPurchased,
				PriceCents: uc.cfg.GalleryPriceCents,
				Currency:   uc.cfg.GalleryCurrency,
			}, nil
		}
		return nil, err
	}

	return &entity.AccessStatus{
		HasAccess:   true,
		Reason:      entity.AccessPurchased,
		PurchasedAt: &purchase.PurchasedAt,
	}, nil
}
