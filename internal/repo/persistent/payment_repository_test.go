package persistent

import (
	"testing"
	"time"

	"velvetroom/internal/entity"
	"velvetroom/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	users := NewUserRepository(db)
	user := &entity.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "hash",
		DateOfBirth: "1990-01-15",
		IsActive:    true,
	}
	if err := users.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestRecordPurchase_WritesEntitlementAndLedger(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	user := createTestUser(t, db, "alice")

	purchase := &entity.GalleryPurchase{
		UserID:                  user.ID,
		StripePaymentIntentID:   "pi_123",
		StripeCheckoutSessionID: "cs_123",
		AmountCents:             1999,
		Currency:                "usd",
		Status:                  entity.StatusCompleted,
	}
	event := &entity.WebhookEvent{
		StripeEventID: "evt_1",
		EventType:     "checkout.session.completed",
		Payload:       `{"id":"evt_1"}`,
	}

	assert.NoError(t, repo.RecordPurchase(purchase, event))
	assert.NotZero(t, purchase.ID)

	has, err := repo.HasCompletedPurchase(user.ID)
	assert.NoError(t, err)
	assert.True(t, has)

	processed, err := repo.EventProcessed("evt_1")
	assert.NoError(t, err)
	assert.True(t, processed)
}

func TestRecordPurchase_DuplicateEventRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	user := createTestUser(t, db, "alice")

	event := &entity.WebhookEvent{StripeEventID: "evt_dup", EventType: "checkout.session.completed"}
	first := &entity.GalleryPurchase{
		UserID: user.ID, StripePaymentIntentID: "pi_1", StripeCheckoutSessionID: "cs_1",
		AmountCents: 1999, Currency: "usd", Status: entity.StatusCompleted,
	}
	assert.NoError(t, repo.RecordPurchase(first, event))

	// Identical redelivery: the unique index on the event id must reject the
	// whole transaction, leaving exactly one entitlement row.
	redelivered := &entity.WebhookEvent{StripeEventID: "evt_dup", EventType: "checkout.session.completed"}
	second := &entity.GalleryPurchase{
		UserID: user.ID, StripePaymentIntentID: "pi_1", StripeCheckoutSessionID: "cs_1",
		AmountCents: 1999, Currency: "usd", Status: entity.StatusCompleted,
	}
	err := repo.RecordPurchase(second, redelivered)
	assert.ErrorIs(t, err, ErrEventAlreadyProcessed)

	var purchaseCount, eventCount int64
	db.Table("gallery_purchases").Count(&purchaseCount)
	db.Table("stripe_webhook_events").Count(&eventCount)
	assert.Equal(t, int64(1), purchaseCount)
	assert.Equal(t, int64(1), eventCount)
}

func TestRecordTip_DuplicateEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	user := createTestUser(t, db, "bob")

	tip := &entity.Tip{
		UserID: user.ID, StripePaymentIntentID: "pi_t1", StripeCheckoutSessionID: "cs_t1",
		AmountCents: 500, Currency: "usd", Message: "great show", Status: entity.StatusCompleted,
	}
	event := &entity.WebhookEvent{StripeEventID: "evt_tip", EventType: "checkout.session.completed"}
	assert.NoError(t, repo.RecordTip(tip, event))

	dup := &entity.Tip{
		UserID: user.ID, StripePaymentIntentID: "pi_t1", StripeCheckoutSessionID: "cs_t1",
		AmountCents: 500, Currency: "usd", Status: entity.StatusCompleted,
	}
	err := repo.RecordTip(dup, &entity.WebhookEvent{StripeEventID: "evt_tip", EventType: "checkout.session.completed"})
	assert.ErrorIs(t, err, ErrEventAlreadyProcessed)

	var tipCount int64
	db.Table("tips").Count(&tipCount)
	assert.Equal(t, int64(1), tipCount)
}

func TestGetCompletedPurchase_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	user := createTestUser(t, db, "carol")

	_, err := repo.GetCompletedPurchase(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	has, err := repo.HasCompletedPurchase(user.ID)
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestRecentTippers_ExcludesAnonymous(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	tips := []*entity.Tip{
		{UserID: alice.ID, StripePaymentIntentID: "pi_1", StripeCheckoutSessionID: "cs_1", AmountCents: 500, Currency: "usd", Status: entity.StatusCompleted},
		{UserID: bob.ID, StripePaymentIntentID: "pi_2", StripeCheckoutSessionID: "cs_2", AmountCents: 1000, Currency: "usd", IsAnonymous: true, Status: entity.StatusCompleted},
	}
	for i, tip := range tips {
		event := &entity.WebhookEvent{StripeEventID: "evt_rt_" + tip.StripePaymentIntentID, EventType: "checkout.session.completed"}
		assert.NoError(t, repo.RecordTip(tip, event))
		// Spread creation times so ordering is deterministic
		db.Table("tips").Where("id = ?", tip.ID).
			Update("created_at", time.Now().Add(time.Duration(i)*time.Second))
	}

	entries, err := repo.RecentTippers(10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, int64(500), entries[0].AmountCents)
	assert.Equal(t, "1990-01-15", entries[0].DateOfBirth)
}

func TestTipStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	user := createTestUser(t, db, "alice")

	for i, amount := range []int64{500, 1500} {
		tip := &entity.Tip{
			UserID: user.ID, StripePaymentIntentID: "pi_s", StripeCheckoutSessionID: "cs_s",
			AmountCents: amount, Currency: "usd", Status: entity.StatusCompleted,
		}
		event := &entity.WebhookEvent{StripeEventID: "evt_stats_" + string(rune('a'+i)), EventType: "checkout.session.completed"}
		assert.NoError(t, repo.RecordTip(tip, event))
	}

	stats, err := repo.TipStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TipCount)
	assert.Equal(t, int64(2000), stats.TotalAmountCents)

	count, total, err := repo.UserTipTotals(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, int64(2000), total)
}

func TestTipStats_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)

	stats, err := repo.TipStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.TipCount)
	assert.Equal(t, int64(0), stats.TotalAmountCents)
}
