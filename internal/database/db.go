package database

import (
	"fashionhub/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Draft{},
		&model.DraftItem{},
		&model.StockMovement{},
		&model.AuditLog{},
		&model.SequenceCounter{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
