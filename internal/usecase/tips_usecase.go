package usecase

import (
	"velvetroom/internal/entity"
	"velvetroom/internal/repo/persistent"
)

const (
	defaultTipperLimit = 10
	maxTipperLimit     = 50
)

type TipsUseCase interface {
	RecentTippers(limit int) ([]*entity.TipperEntry, error)
	Stats() (*entity.TipStats, error)
}

type tipsUseCase struct {
	payments persistent.PaymentRepository
}

func NewTipsUseCase(payments persistent.PaymentRepository) TipsUseCase {
	return &tipsUseCase{payments: payments}
}

func (uc *tipsUseCase) RecentTippers(limit int) ([]*entity.TipperEntry, error) {
	if limit <= 0 {
		limit = defaultTipperLimit
	}
	if limit > maxTipperLimit {
		limit = maxTipperLimit
	}
	return uc.payments.RecentTippers(limit)
}

func (uc *tipsUseCase) Stats() (*entity.TipStats, error) {
	return uc.payments.TipStats()
}
