package entity

import "time"

// Purchase types carried in checkout session metadata.
const (
	PurchaseTypeGallery = "gallery_access"
	PurchaseTypeTip     = "tip"
)

const StatusCompleted = "completed"

// GalleryPurchase is the entitlement record for paid gallery access. Rows are
// written only by the webhook receiver and never mutated afterwards.
type GalleryPurchase struct {
	ID                      int       `json:"id"`
	UserID                  int       `json:"user_id"`
	StripePaymentIntentID   string    `json:"stripe_payment_intent_id"`
	StripeCheckoutSessionID string    `json:"stripe_checkout_session_id"`
	AmountCents             int64     `json:"amount_cents"`
	Currency                string    `json:"currency"`
	Status                  string    `json:"status"`
	PurchasedAt             time.Time `json:"purchased_at"`
}

type Tip struct {
	ID                      int       `json:"id"`
	UserID                  int       `json:"user_id"`
	StripePaymentIntentID   string    `json:"stripe_payment_intent_id"`
	StripeCheckoutSessionID string    `json:"stripe_checkout_session_id"`
	AmountCents             int64     `json:"amount_cents"`
	Currency                string    `json:"currency"`
	Message                 string    `json:"message"`
	IsAnonymous             bool      `json:"is_anonymous"`
	Status                  string    `json:"status"`
	CreatedAt               time.Time `json:"created_at"`
}

// WebhookEvent is the idempotency ledger: one row per processed provider
// event, with the event id unique at the database level.
type WebhookEvent struct {
	ID            int       `json:"id"`
	StripeEventID string    `json:"stripe_event_id"`
	EventType     string    `json:"event_type"`
	Payload       string    `json:"payload"`
	CreatedAt     time.Time `json:"created_at"`
}

// CheckoutSession is what the client needs to redirect to the provider.
type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// Access check tri-state.
const (
	AccessNotLoggedIn  = "not_logged_in"
	AccessNotPurchased = "not_purchased"
	AccessPurchased    = "purchased"
)

type AccessStatus struct {
	HasAccess   bool       `json:"hasAccess"`
	Reason      string     `json:"reason"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
	PriceCents  int64      `json:"priceCents,omitempty"`
	Currency    string     `json:"currency,omitempty"`
}

// TipperEntry is a row of the public recent-tippers feed.
type TipperEntry struct {
	Username    string    `json:"username"`
	DateOfBirth string    `json:"dob"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"datetime"`
}

type TipStats struct {
	TipCount         int64 `json:"total_tips"`
	TotalAmountCents int64 `json:"total_amount_cents"`
}
