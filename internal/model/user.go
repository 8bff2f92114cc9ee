package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleAdmin       = "admin"
	RoleSalesPerson = "salesPerson"
)

// UserStatus constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// UserPermissions configures what a sales person may do at the counter
type UserPermissions struct {
	CanDiscount        bool `gorm:"default:true" json:"can_discount"`
	CanRefund          bool `gorm:"default:false" json:"can_refund"`
	CanViewReports     bool `gorm:"default:false" json:"can_view_reports"`
	MaxDiscountPercent int  `gorm:"default:10" json:"max_discount_percent"`
}

// User represents a store employee (admin or sales person)
type User struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Email       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone       string          `gorm:"type:varchar(20);not null" json:"phone"`
	Password    string          `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role        string          `gorm:"type:varchar(50);not null;default:'salesPerson'" json:"role"`
	Status      string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Permissions UserPermissions `gorm:"embedded;embeddedPrefix:perm_" json:"permissions"`
	LastLogin   *time.Time      `json:"last_login"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
