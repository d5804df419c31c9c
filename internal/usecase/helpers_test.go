package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"velvetroom/internal/entity"
	"velvetroom/internal/model"
	"velvetroom/internal/repo/persistent"
	"velvetroom/pkg/config"
	"velvetroom/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		GalleryPriceCents:  1999,
		GalleryCurrency:    "usd",
		GalleryProductName: "Gallery Access",
		GalleryProductDesc: "Lifetime access to the private gallery",
		TipMinCents:        100,
		TipMaxCents:        100000,
		TipMessageMaxLen:   500,
		MaxUploadBytes:     100 * 1024 * 1024,
		ImageDir:           "uploads/images",
		VideoDir:           "uploads/videos",
	}
}

var testUserSeq int

func createTestUser(t *testing.T, users persistent.UserRepository) *entity.User {
	t.Helper()

	testUserSeq++
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Username:    fmt.Sprintf("tester%d", testUserSeq),
		Email:       fmt.Sprintf("tester%d@example.com", testUserSeq),
		Password:    string(hash),
		DateOfBirth: "1990-05-20",
		IsActive:    true,
	}
	require.NoError(t, users.Create(user))
	return user
}

func grantGalleryAccess(t *testing.T, payments persistent.PaymentRepository, userID int) {
	t.Helper()

	purchase := &entity.GalleryPurchase{
		UserID:                  userID,
		StripePaymentIntentID:   fmt.Sprintf("pi_test_%d_%d", userID, time.Now().UnixNano()),
		StripeCheckoutSessionID: fmt.Sprintf("cs_test_%d_%d", userID, time.Now().UnixNano()),
		AmountCents:             1999,
		Currency:                "usd",
		Status:                  entity.StatusCompleted,
	}
	event := &entity.WebhookEvent{
		StripeEventID: fmt.Sprintf("evt_seed_%d_%d", userID, time.Now().UnixNano()),
		EventType:     "checkout.session.completed",
	}
	require.NoError(t, payments.RecordPurchase(purchase, event))
}

func testLogger() *logger.Logger {
	return logger.New()
}
