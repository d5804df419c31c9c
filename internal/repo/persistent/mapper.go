package persistent

import (
	"velvetroom/internal/entity"
	"velvetroom/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		Password:    m.Password,
		DateOfBirth: m.DateOfBirth,
		IsActive:    m.IsActive,
		LastLogin:   m.LastLogin,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:          e.ID,
		Username:    e.Username,
		Email:       e.Email,
		Password:    e.Password,
		DateOfBirth: e.DateOfBirth,
		IsActive:    e.IsActive,
		LastLogin:   e.LastLogin,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToPurchaseEntity(m *model.GalleryPurchaseModel) *entity.GalleryPurchase {
	if m == nil {
		return nil
	}

	return &entity.GalleryPurchase{
		ID:                      m.ID,
		UserID:                  m.UserID,
		StripePaymentIntentID:   m.StripePaymentIntentID,
		StripeCheckoutSessionID: m.StripeCheckoutSessionID,
		AmountCents:             m.AmountCents,
		Currency:                m.Currency,
		Status:                  m.Status,
		PurchasedAt:             m.PurchasedAt,
	}
}

func ToPurchaseModel(e *entity.GalleryPurchase) *model.GalleryPurchaseModel {
	if e == nil {
		return nil
	}

	return &model.GalleryPurchaseModel{
		ID:                      e.ID,
		UserID:                  e.UserID,
		StripePaymentIntentID:   e.StripePaymentIntentID,
		StripeCheckoutSessionID: e.StripeCheckoutSessionID,
		AmountCents:             e.AmountCents,
		Currency:                e.Currency,
		Status:                  e.Status,
		PurchasedAt:             e.PurchasedAt,
	}
}

func ToTipEntity(m *model.TipModel) *entity.Tip {
	if m == nil {
		return nil
	}

	return &entity.Tip{
		ID:                      m.ID,
		UserID:                  m.UserID,
		StripePaymentIntentID:   m.StripePaymentIntentID,
		StripeCheckoutSessionID: m.StripeCheckoutSessionID,
		AmountCents:             m.AmountCents,
		Currency:                m.Currency,
		Message:                 m.Message,
		IsAnonymous:             m.IsAnonymous,
		Status:                  m.Status,
		CreatedAt:               m.CreatedAt,
	}
}

func ToTipModel(e *entity.Tip) *model.TipModel {
	if e == nil {
		return nil
	}

	return &model.TipModel{
		ID:                      e.ID,
		UserID:                  e.UserID,
		StripePaymentIntentID:   e.StripePaymentIntentID,
		StripeCheckoutSessionID: e.StripeCheckoutSessionID,
		AmountCents:             e.AmountCents,
		Currency:                e.Currency,
		Message:                 e.Message,
		IsAnonymous:             e.IsAnonymous,
		Status:                  e.Status,
		CreatedAt:               e.CreatedAt,
	}
}

func ToWebhookEventModel(e *entity.WebhookEvent) *model.WebhookEventModel {
	if e == nil {
		return nil
	}

	return &model.WebhookEventModel{
		ID:            e.ID,
		StripeEventID: e.StripeEventID,
		EventType:     e.EventType,
		Payload:       e.Payload,
		CreatedAt:     e.CreatedAt,
	}
}
