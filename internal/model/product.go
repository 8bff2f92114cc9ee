package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender constants for apparel categorization
const (
	GenderMen    = "Men"
	GenderWomen  = "Women"
	GenderUnisex = "Unisex"
	GenderKids   = "Kids"
)

// Product represents a catalog entry with its live stock counter.
// Stock is never negative; every change goes through ProductRepository.AdjustStock.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Barcode     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"barcode"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int            `gorm:"type:int;default:0;not null" json:"stock"`
	Category    string         `gorm:"type:varchar(100);not null;index" json:"category"`
	MinStock    int            `gorm:"type:int;default:10;not null" json:"min_stock"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Size        string         `gorm:"type:varchar(50)" json:"size,omitempty"`
	Color       string         `gorm:"type:varchar(50)" json:"color,omitempty"`
	Brand       string         `gorm:"type:varchar(100)" json:"brand,omitempty"`
	Gender      string         `gorm:"type:varchar(20);default:'Unisex'" json:"gender"`
	Image       string         `gorm:"type:text" json:"image,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Discount configuration, capped per role at sale time
	DiscountEnabled     bool    `gorm:"default:false" json:"discount_enabled"`
	DiscountPercent     float64 `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	MaxDiscountForSales float64 `gorm:"type:decimal(5,2);default:10" json:"max_discount_for_sales"`
	MaxDiscountForAdmin float64 `gorm:"type:decimal(5,2);default:20" json:"max_discount_for_admin"`
}

// IsLowStock reports whether the product is at or below its reorder threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
