package model

import (
	"time"

	"github.com/google/uuid"
)

// Draft is a saved-but-not-invoiced cart a sales person can resume later.
// It never touches stock; stock moves only when the draft is checked out
// as a Sale.
type Draft struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string      `gorm:"type:varchar(255);not null" json:"name"`
	Items         []DraftItem `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE" json:"items"`
	CustomerName  string      `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone string      `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     *uuid.UUID  `gorm:"type:uuid;index" json:"created_by"`
	Creator       *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DraftItem mirrors SaleItem so a draft converts 1:1 into a sale
type DraftItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DraftID     uuid.UUID `gorm:"type:uuid;not null;index" json:"draft_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"type:int;not null" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount    float64   `gorm:"type:decimal(5,2);default:0" json:"discount"`
	Size        string    `gorm:"type:varchar(50)" json:"size,omitempty"`
	Color       string    `gorm:"type:varchar(50)" json:"color,omitempty"`
}
