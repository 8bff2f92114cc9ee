package repository

import (
	"context"
	"errors"

	"fashionhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *model.PurchaseOrder) error
	Update(ctx context.Context, order *model.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	// FindByIDForUpdate loads the order (with items) holding a row lock on
	// the order, so concurrent receives of the same order serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context, page, limit int, status string) ([]model.PurchaseOrder, int64, error)
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *purchaseOrderRepository) Update(ctx context.Context, order *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Session(&gorm.Session{FullSaveAssociations: false}).Save(order).Error
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.PurchaseOrder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *purchaseOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("Supplier").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *purchaseOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	// Items are loaded separately; FOR UPDATE cannot be combined with the
	// preload joins on all drivers.
	if err := GetDB(ctx, r.db).
		Where("order_id = ?", id).
		Order("id").
		Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *purchaseOrderRepository) List(ctx context.Context, page, limit int, status string) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	db := GetDB(ctx, r.db).Model(&model.PurchaseOrder{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetch := GetDB(ctx, r.db).Preload("Items").Preload("Supplier")
	if status != "" {
		fetch = fetch.Where("status = ?", status)
	}
	if err := fetch.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
