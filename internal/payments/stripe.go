package payments

import (
	"fmt"
	"strconv"

	"velvetroom/internal/entity"

	stripe "github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// CheckoutParams describes one hosted checkout session. Metadata carries
// everything the webhook later needs to attribute the payment.
type CheckoutParams struct {
	UserID      int
	Username    string
	Type        string // entity.PurchaseTypeGallery or entity.PurchaseTypeTip
	AmountCents int64
	Currency    string
	ProductName string
	ProductDesc string
	Message     string
	Anonymous   bool
	SuccessURL  string
	CancelURL   string
}

// CheckoutClient is the slice of the payment provider the checkout usecase
// needs; tests substitute a fake.
type CheckoutClient interface {
	CreateCheckoutSession(p CheckoutParams) (*entity.CheckoutSession, error)
}

// StripeClient creates real Stripe Checkout sessions.
type StripeClient struct{}

func NewStripeClient(secretKey string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{}
}

func (c *StripeClient) CreateCheckoutSession(p CheckoutParams) (*entity.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(p.ProductName),
					Description: stripe.String(p.ProductDesc),
				},
				UnitAmount: stripe.Int64(p.AmountCents),
			},
			Quantity: stripe.Int64(1),
		}},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
		ClientReferenceID: stripe.String(strconv.Itoa(p.UserID)),
	}

	params.AddMetadata("user_id", strconv.Itoa(p.UserID))
	params.AddMetadata("username", p.Username)
	params.AddMetadata("type", p.Type)
	if p.Type == entity.PurchaseTypeTip {
		params.AddMetadata("message", p.Message)
		params.AddMetadata("anonymous", strconv.FormatBool(p.Anonymous))
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}

	return &entity.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyEvent checks the webhook signature against the shared secret and
// returns the parsed event. API version drift between the dashboard and the
// pinned SDK version is tolerated; the signature is not.
func VerifyEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
