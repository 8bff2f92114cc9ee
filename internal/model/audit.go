package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateProduct = "CREATE_PRODUCT"
	ActionUpdateProduct = "UPDATE_PRODUCT"
	ActionDeleteProduct = "DELETE_PRODUCT"
	ActionAdjustStock   = "ADJUST_STOCK"

	ActionCreatePurchaseOrder  = "CREATE_PURCHASE_ORDER"
	ActionUpdatePurchaseOrder  = "UPDATE_PURCHASE_ORDER"
	ActionDeletePurchaseOrder  = "DELETE_PURCHASE_ORDER"
	ActionReceivePurchaseOrder = "RECEIVE_PURCHASE_ORDER"
	ActionCancelPurchaseOrder  = "CANCEL_PURCHASE_ORDER"

	ActionCreateSale = "CREATE_SALE"

	ActionCreateUser = "CREATE_USER"
	ActionUpdateUser = "UPDATE_USER"
	ActionDeleteUser = "DELETE_USER"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
