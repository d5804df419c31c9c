package usecase

import (
	"fmt"
	"unicode/utf8"

	"velvetroom/internal/entity"
	"velvetroom/internal/payments"
	"velvetroom/internal/repo/persistent"
	"velvetroom/pkg/config"
	"velvetroom/pkg/logger"
)

type CheckoutUseCase interface {
	// CreateGalleryCheckout builds a checkout session for the one-time
	// gallery-access purchase. baseURL is scheme://host of the request.
	CreateGalleryCheckout(user *entity.User, baseURL string) (*entity.CheckoutSession, error)
	CreateTipCheckout(user *entity.User, baseURL string, amountCents int64, message string, anonymous bool) (*entity.CheckoutSession, error)
}

type checkoutUseCase struct {
	repo   persistent.PaymentRepository
	client payments.CheckoutClient
	cfg    *config.Config
	logger *logger.Logger
}

func NewCheckoutUseCase(repo persistent.PaymentRepository, client payments.CheckoutClient, cfg *config.Config, logger *logger.Logger) CheckoutUseCase {
	return &checkoutUseCase{
		repo:   repo,
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

func (uc *checkoutUseCase) CreateGalleryCheckout(user *entity.User, baseURL string) (*entity.CheckoutSession, error) {
	purchased, err := uc.repo.HasCompletedPurchase(user.ID)
	if err != nil {
		return nil, err
	}
	if purchased {
		return nil, ErrAlreadyPurchased
	}

	session, err := uc.client.CreateCheckoutSession(payments.CheckoutParams{
		UserID:      user.ID,
		Username:    user.Username,
		Type:        entity.PurchaseTypeGallery,
		AmountCents: uc.cfg.GalleryPriceCents,
		Currency:    uc.cfg.GalleryCurrency,
		ProductName: uc.cfg.GalleryProductName,
		ProductDesc: uc.cfg.GalleryProductDesc,
		SuccessURL:  baseURL + "/gallery.html?purchase=success",
		CancelURL:   baseURL + "/gallery.html?purchase=cancelled",
	})
	if err != nil {
		uc.logger.Error("Gallery checkout failed for user %d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	uc.logger.Info("Gallery checkout session %s created for user %d", session.ID, user.ID)
	return session, nil
}

func (uc *checkoutUseCase) CreateTipCheckout(user *entity.User, baseURL string, amountCents int64, message string, anonymous bool) (*entity.CheckoutSession, error) {
	if amountCents < uc.cfg.TipMinCents || amountCents > uc.cfg.TipMaxCents {
		return nil, ErrAmountOutOfRange
	}

	if len(message) > uc.cfg.TipMessageMaxLen {
		// Cut on a rune boundary so the metadata stays valid UTF-8.
		cut := uc.cfg.TipMessageMaxLen
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		message = message[:cut]
	}

	description := message
	if description == "" {
		description = "Thank you for your support!"
	}

	session, err := uc.client.CreateCheckoutSession(payments.CheckoutParams{
		UserID:      user.ID,
		Username:    user.Username,
		Type:        entity.PurchaseTypeTip,
		AmountCents: amountCents,
		Currency:    uc.cfg.GalleryCurrency,
		ProductName: "Tip",
		ProductDesc: description,
		Message:     message,
		Anonymous:   anonymous,
		SuccessURL:  baseURL + "/index.html?tip=success",
		CancelURL:   baseURL + "/index.html?tip=cancelled",
	})
	if err != nil {
		uc.logger.Error("Tip checkout failed for user %d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	uc.logger.Info("Tip checkout session %s created for user %d (%d cents)", session.ID, user.ID, amountCents)
	return session, nil
}
