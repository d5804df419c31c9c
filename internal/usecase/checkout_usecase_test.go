package usecase

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"velvetroom/internal/entity"
	"velvetroom/internal/payments"
	"velvetroom/internal/repo/persistent"
)

type mockCheckoutClient struct {
	mock.Mock
}

func (m *mockCheckoutClient) CreateCheckoutSession(p payments.CheckoutParams) (*entity.CheckoutSession, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CheckoutSession), args.Error(1)
}

func TestCreateGalleryCheckout(t *testing.T) {
	db := newTestDB(t)
	users := persistent.NewUserRepository(db)
	paymentsRepo := persistent.NewPaymentRepository(db)
	user := createTestUser(t, users)

	client := new(mockCheckoutClient)
	client.On("CreateCheckoutSession", mock.MatchedBy(func(p payments.CheckoutParams) bool {
		return p.UserID == user.ID &&
			p.Type == entity.PurchaseTypeGallery &&
			p.AmountCents == 1999 &&
			p.Currency == "usd" &&
			p.SuccessURL == "https://example.com/gallery.html?purchase=success" &&
			p.CancelURL == "https://example.com/gallery.html?purchase=cancelled"
	})).Return(&entity.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/cs_test_123"}, nil)

	uc := NewCheckoutUseCase(paymentsRepo, client, newTestConfig(), testLogger())

	session, err := uc.CreateGalleryCheckout(user, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)
	client.AssertExpectations(t)
}

func TestCreateGalleryCheckout_AlreadyPurchased(t *testing.T) {
	db := newTestDB(t)
	users := persistent.NewUserRepository(db)
	paymentsRepo := persistent.NewPaymentRepository(db)
	user := createTestUser(t, users)
	grantGalleryAccess(t, paymentsRepo, user.ID)

	client := new(mockCheckoutClient)
	uc := NewCheckoutUseCase(paymentsRepo, client, newTestConfig(), testLogger())

	_, err := uc.CreateGalleryCheckout(user, "https://example.com")
	assert.ErrorIs(t, err, ErrAlreadyPurchased)
	client.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything)
}

func TestCreateGalleryCheckout_ProviderError(t *testing.T) {
	db := newTestDB(t)
	users := persistent.NewUserRepository(db)
	paymentsRepo := persistent.NewPaymentRepository(db)
	user := createTestUser(t, users)

	client := new(mockCheckoutClient)
	client.On("CreateCheckoutSession", mock.Anything).Return(nil, errors.New("stripe unreachable"))

	uc := NewCheckoutUseCase(paymentsRepo, client, newTestConfig(), testLogger())

	_, err := uc.CreateGalleryCheckout(user, "https://example.com")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestCreateTipCheckout(t *testing.T) {
	db := newTestDB(t)
	users := persistent.NewUserRepository(db)
	paymentsRepo := persistent.NewPaymentRepository(db)
	user := createTestUser(t, users)

	client := new(mockCheckoutClient)
	client.On("CreateCheckoutSession", mock.MatchedBy(func(p payments.CheckoutParams) bool {
		return p.Type == entity.PurchaseTypeTip &&
			p.AmountCents == 2500 &&
			p.Message == "great show" &&
			p.Anonymous &&
			p.SuccessURL == "https://example.com/index.html?tip=success" &&
			p.CancelURL == "https://example.com/index.html?tip=cancelled"
	})).Return(&entity.CheckoutSession{ID: "cs_tip_1", URL: "https://checkout.stripe.com/c/cs_tip_1"}, nil)

	uc := NewCheckoutUseCase(paymentsRepo, client, newTestConfig(), testLogger())

	session, err := uc.CreateTipCheckout(user, "https://example.com", 2500, "great show", true)
	require.NoError(t, err)
	assert.Equal(t, "cs_tip_1", session.ID)
	client.AssertExpectations(t)
}

func TestCreateTipCheckout_AmountOutOfRange(t *testing.T) {
	db := newTestDB(t)
	users := persistent.NewUserRepository(db)
	paymentsRepo := persistent.NewPaymentRepository(db)
	user := createTestUser(t, users)

	client := new(mockCheckoutClient)
	uc := NewCheckoutUseCase(paymentsRepo, client, newTestConfig(), testLogger())

	for _, amount := range []int64{0, 99, 100001} {
		t.Run(strconv.FormatInt(amount, 10), func(t *testing.T) {
			_, err := uc.CreateTipCheckout(user, "https://example.com", amount, "", false)
			assert.ErrorIs(t, err, ErrAmountOutOfRange)
		})
	}
	client.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything)
}

func TestCreateTipCheckout_MessageTruncated(t *testing.T) {
	db := newTestDB(t)
	users := persistent.NewUserRepository(db)
	paymentsRepo := persistent.NewPaymentRepository(db)
	user := createTestUser(t, users)

	client := new(mockCheckoutClient)
	client.On("CreateCheckoutSession", mock.MatchedBy(func(p payments.CheckoutParams) bool {
		return len(p.Message) == 500
	})).Return(&entity.CheckoutSession{ID: "cs_tip_2", URL: "u"}, nil)

	uc := NewCheckoutUseCase(paymentsRepo, client, newTestConfig(), testLogger())

	_, err := uc.CreateTipCheckout(user, "https://example.com", 500, strings.Repeat("a", 600), false)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestCreateTipCheckout_MessageTruncatedOnRuneBoundary(t *testing.T) {
	db := newTestDB(t)
	users := persistent.NewUserRepository(db)
	paymentsRepo := persistent.NewPaymentRepository(db)
	user := createTestUser(t, users)

	client := new(mockCheckoutClient)
	client.On("CreateCheckoutSession", mock.MatchedBy(func(p payments.CheckoutParams) bool {
		// 3-byte runes do not divide 500 evenly, so the cut walks back to 498.
		return utf8.ValidString(p.Message) && len(p.Message) == 498
	})).Return(&entity.CheckoutSession{ID: "cs_tip_3", URL: "u"}, nil)

	uc := NewCheckoutUseCase(paymentsRepo, client, newTestConfig(), testLogger())

	_, err := uc.CreateTipCheckout(user, "https://example.com", 500, strings.Repeat("€", 200), false)
	require.NoError(t, err)
	client.AssertExpectations(t)
}
