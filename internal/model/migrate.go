package model

import "gorm.io/gorm"

// AutoMigrate creates the schema in sqlite mode and in tests. Postgres
// deployments run the SQL migrations via cmd/migrate instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&GalleryPurchaseModel{},
		&TipModel{},
		&WebhookEventModel{},
	)
}
