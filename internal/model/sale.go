package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod constants
const (
	PaymentMethodCash       = "CASH"
	PaymentMethodCreditCard = "CREDIT_CARD"
	PaymentMethodDebitCard  = "DEBIT_CARD"
	PaymentMethodUPI        = "UPI"
)

// Sale represents a completed point-of-sale checkout with its invoice data.
// InvoiceNumber (INV-YYMM-NNNNN) comes from the same sequence counter
// mechanism as purchase order numbers.
type Sale struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber    string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_number"`
	Items            []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	Tax              decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"tax"`
	Discount         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount"`
	Total            decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total"`
	PaymentMethod    string          `gorm:"type:varchar(20);not null;index" json:"payment_method"`
	CardLast4        string          `gorm:"type:varchar(4)" json:"card_last4,omitempty"`
	UPITransactionID string          `gorm:"type:varchar(100)" json:"upi_transaction_id,omitempty"`
	CustomerName     string          `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone    string          `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	SalesPersonID    *uuid.UUID      `gorm:"type:uuid;index" json:"sales_person_id"`
	SalesPerson      *User           `gorm:"foreignKey:SalesPersonID" json:"sales_person,omitempty"`
	SalesPersonName  string          `gorm:"type:varchar(255)" json:"sales_person_name"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SaleItem is one sold product line, with its per-line discount percent
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"type:int;not null" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount    float64   `gorm:"type:decimal(5,2);default:0" json:"discount"`
	Size        string    `gorm:"type:varchar(50)" json:"size,omitempty"`
	Color       string    `gorm:"type:varchar(50)" json:"color,omitempty"`
}
