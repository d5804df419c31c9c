package usecase

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/stripe/stripe-go/v82"

	"velvetroom/internal/entity"
	"velvetroom/internal/payments"
	"velvetroom/internal/repo/persistent"
	"velvetroom/pkg/logger"
)

type WebhookResult int

const (
	WebhookProcessed WebhookResult = iota
	WebhookDuplicate
	WebhookIgnored
)

type WebhookUseCase interface {
	// Process verifies the payload signature and records the event.
	// Redelivered events return WebhookDuplicate without side effects.
	Process(payload []byte, sigHeader string) (WebhookResult, error)
}

type webhookUseCase struct {
	repo          persistent.PaymentRepository
	webhookSecret string
	logger        *logger.Logger
}

func NewWebhookUseCase(repo persistent.PaymentRepository, webhookSecret string, logger *logger.Logger) WebhookUseCase {
	return &webhookUseCase{
		repo:          repo,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (uc *webhookUseCase) Process(payload []byte, sigHeader string) (WebhookResult, error) {
	event, err := payments.VerifyEvent(payload, sigHeader, uc.webhookSecret)
	if err != nil {
		uc.logger.Warn("Webhook signature verification failed: %v", err)
		return WebhookIgnored, ErrInvalidSignature
	}

	processed, err := uc.repo.EventProcessed(event.ID)
	if err != nil {
		return WebhookIgnored, err
	}
	if processed {
		uc.logger.Info("Webhook event %s already processed, skipping", event.ID)
		return WebhookDuplicate, nil
	}

	switch event.Type {
	case "checkout.session.completed":
		return uc.handleCheckoutCompleted(&event, payload)
	default:
		uc.logger.Info("Ignoring webhook event %s of type %s", event.ID, event.Type)
		return WebhookIgnored, nil
	}
}

func (uc *webhookUseCase) handleCheckoutCompleted(event *stripe.Event, payload []byte) (WebhookResult, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return WebhookIgnored, err
	}

	userIDStr := session.Metadata["user_id"]
	purchaseType := session.Metadata["type"]
	if userIDStr == "" || purchaseType == "" {
		uc.logger.Warn("Webhook event %s missing metadata", event.ID)
		return WebhookIgnored, ErrMissingMetadata
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		return WebhookIgnored, ErrMissingMetadata
	}

	var paymentIntentID string
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	webhookEvent := &entity.WebhookEvent{
		StripeEventID: event.ID,
		EventType:     string(event.Type),
		Payload:       string(payload),
	}

	switch purchaseType {
	case entity.PurchaseTypeGallery:
		purchase := &entity.GalleryPurchase{
			UserID:                  userID,
			StripePaymentIntentID:   paymentIntentID,
			StripeCheckoutSessionID: session.ID,
			AmountCents:             session.AmountTotal,
			Currency:                string(session.Currency),
			Status:                  entity.StatusCompleted,
		}
		err = uc.repo.RecordPurchase(purchase, webhookEvent)
	case entity.PurchaseTypeTip:
		tip := &entity.Tip{
			UserID:                  userID,
			StripePaymentIntentID:   paymentIntentID,
			StripeCheckoutSessionID: session.ID,
			AmountCents:             session.AmountTotal,
			Currency:                string(session.Currency),
			Message:                 session.Metadata["message"],
			IsAnonymous:             session.Metadata["anonymous"] == "true",
			Status:                  entity.StatusCompleted,
		}
		err = uc.repo.RecordTip(tip, webhookEvent)
	default:
		uc.logger.Warn("Webhook event %s has unknown purchase type %q", event.ID, purchaseType)
		return WebhookIgnored, ErrUnknownPurchaseType
	}

	if err != nil {
		if errors.Is(err, persistent.ErrEventAlreadyProcessed) {
			uc.logger.Info("Webhook event %s raced a redelivery, skipping", event.ID)
			return WebhookDuplicate, nil
		}
		return WebhookIgnored, err
	}

	uc.logger.Info("Webhook event %s recorded %s for user %d", event.ID, purchaseType, userID)
	return WebhookProcessed, nil
}
