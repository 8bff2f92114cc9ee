package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus constants. The receive path only ever moves pending -> received.
const (
	OrderStatusPending   = "pending"
	OrderStatusReceived  = "received"
	OrderStatusCancelled = "cancelled"
)

// PaymentStatus constants
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// PurchaseOrder represents a supplier order awaiting delivery.
// OrderNumber is human readable (PO-YYMM-NNNNN) and assigned from an
// atomic sequence counter at creation.
type PurchaseOrder struct {
	ID               uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber      string              `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	SupplierID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier         *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	SupplierName     string              `gorm:"type:varchar(255);not null" json:"supplier_name"` // snapshot at creation
	Items            []PurchaseOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	PaidAmount       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0" json:"paid_amount"`
	Status           string              `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus    string              `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	ExpectedDelivery *time.Time          `json:"expected_delivery"`
	ReceivedDate     *time.Time          `json:"received_date"`
	Notes            string              `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// PurchaseOrderItem is a line of a purchase order. ProductID is a weak
// reference into the catalog; ProductName is snapshotted so the order stays
// readable after catalog edits.
type PurchaseOrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"type:int;not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Size        string    `gorm:"type:varchar(50)" json:"size,omitempty"`
	Color       string    `gorm:"type:varchar(50)" json:"color,omitempty"`
}
