package model

import (
	"time"

	"github.com/google/uuid"
)

// MovementType constants
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// MovementReason constants
const (
	ReasonPurchaseReceipt = "PURCHASE_RECEIPT"
	ReasonSale            = "SALE"
	ReasonManualAdjust    = "MANUAL_ADJUST"
)

// StockMovement records every stock change as an append-only ledger row.
// StockAfter captures the product's stock immediately after the change,
// so the ledger can be replayed or audited against the live counter.
type StockMovement struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	ReferenceID *uuid.UUID `gorm:"type:uuid;index" json:"reference_id"` // sale or purchase order id, nil for manual edits
	Type        string     `gorm:"type:varchar(10);not null" json:"type"`
	Reason      string     `gorm:"type:varchar(30);not null" json:"reason"`
	Quantity    int        `gorm:"type:int;not null" json:"quantity"`
	StockAfter  int        `gorm:"type:int;not null" json:"stock_after"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}
