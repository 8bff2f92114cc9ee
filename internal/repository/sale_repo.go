package repository

import (
	"context"
	"errors"
	"time"

	"fashionhub/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleFilter narrows sale listings. SalesPersonID restricts a sales person
// to their own sales; admins leave it nil.
type SaleFilter struct {
	SalesPersonID *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, page, limit int, filter SaleFilter) ([]model.Sale, int64, error)
	Stats(ctx context.Context, startDate, endDate *time.Time) (*model.SalesStats, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *model.Sale) error {
	return GetDB(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("SalesPerson").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, page, limit int, filter SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	apply := func(db *gorm.DB) *gorm.DB {
		if filter.SalesPersonID != nil {
			db = db.Where("sales_person_id = ?", *filter.SalesPersonID)
		}
		if filter.StartDate != nil {
			db = db.Where("created_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where("created_at <= ?", *filter.EndDate)
		}
		return db
	}

	if err := apply(GetDB(ctx, r.db).Model(&model.Sale{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := apply(GetDB(ctx, r.db).Preload("Items").Preload("SalesPerson")).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

func (r *saleRepository) Stats(ctx context.Context, startDate, endDate *time.Time) (*model.SalesStats, error) {
	db := GetDB(ctx, r.db).Model(&model.Sale{})
	if startDate != nil {
		db = db.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		db = db.Where("created_at <= ?", *endDate)
	}

	var overall struct {
		TotalSales   int64
		TotalRevenue decimal.Decimal
		AverageOrder decimal.Decimal
	}
	if err := db.Session(&gorm.Session{}).
		Select("COUNT(*) as total_sales, COALESCE(SUM(total), 0) as total_revenue, COALESCE(AVG(total), 0) as average_order").
		Scan(&overall).Error; err != nil {
		return nil, err
	}

	var byMethod []model.PaymentMethodStat
	if err := db.Session(&gorm.Session{}).
		Select("payment_method, COUNT(*) as count, COALESCE(SUM(total), 0) as total").
		Group("payment_method").
		Order("total DESC").
		Scan(&byMethod).Error; err != nil {
		return nil, err
	}

	stats := &model.SalesStats{
		TotalSales:        overall.TotalSales,
		TotalRevenue:      overall.TotalRevenue,
		AverageOrderValue: overall.AverageOrder,
		ByPaymentMethod:   byMethod,
	}
	if startDate != nil {
		stats.StartDate = *startDate
	}
	if endDate != nil {
		stats.EndDate = *endDate
	}
	return stats, nil
}
