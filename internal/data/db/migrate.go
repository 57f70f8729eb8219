package db

import (
	types "github.com/yungbote/forcebook-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalog
		&types.ItemTemplate{},

		// Rebels + holdings
		&types.Rebel{},
		&types.Item{},

		// Accusation ledger
		&types.TreasonReport{},

		// Audit
		&types.NegotiationRecord{},
	)
}
