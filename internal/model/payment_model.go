package model

import "time"

type GalleryPurchaseModel struct {
	ID                      int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                  int       `gorm:"not null;index" json:"user_id"`
	StripePaymentIntentID   string    `gorm:"size:255;not null" json:"stripe_payment_intent_id"`
	StripeCheckoutSessionID string    `gorm:"size:255;not null" json:"stripe_checkout_session_id"`
	AmountCents             int64     `gorm:"not null" json:"amount_cents"`
	Currency                string    `gorm:"size:10;not null" json:"currency"`
	Status                  string    `gorm:"size:20;not null;default:'completed'" json:"status"`
	PurchasedAt             time.Time `gorm:"autoCreateTime" json:"purchased_at"`
}

func (GalleryPurchaseModel) TableName() string {
	return "gallery_purchases"
}

type TipModel struct {
	ID                      int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                  int       `gorm:"not null;index" json:"user_id"`
	StripePaymentIntentID   string    `gorm:"size:255;not null" json:"stripe_payment_intent_id"`
	StripeCheckoutSessionID string    `gorm:"size:255;not null" json:"stripe_checkout_session_id"`
	AmountCents             int64     `gorm:"not null" json:"amount_cents"`
	Currency                string    `gorm:"size:10;not null" json:"currency"`
	Message                 string    `gorm:"size:500" json:"message"`
	IsAnonymous             bool      `gorm:"default:false" json:"is_anonymous"`
	Status                  string    `gorm:"size:20;not null;default:'completed'" json:"status"`
	CreatedAt               time.Time `json:"created_at"`
}

func (TipModel) TableName() string {
	return "tips"
}

// WebhookEventModel is the idempotency ledger. The unique index on
// stripe_event_id is the actual enforcement against duplicate delivery; the
// repository pre-check is only a fast path.
type WebhookEventModel struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StripeEventID string    `gorm:"uniqueIndex;size:255;not null" json:"stripe_event_id"`
	EventType     string    `gorm:"size:100;not null" json:"event_type"`
	Payload       string    `gorm:"type:text" json:"payload"`
	CreatedAt     time.Time `json:"created_at"`
}

func (WebhookEventModel) TableName() string {
	return "stripe_webhook_events"
}
