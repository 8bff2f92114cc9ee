package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Barcode     string  `json:"barcode" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Category    string  `json:"category" binding:"required"`
	MinStock    *int    `json:"min_stock" binding:"omitempty,gte=0"`
	Description string  `json:"description"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Brand       string  `json:"brand"`
	Gender      string  `json:"gender" binding:"omitempty,oneof=Men Women Unisex Kids"`
	Image       string  `json:"image"`

	DiscountEnabled     bool    `json:"discount_enabled"`
	DiscountPercent     float64 `json:"discount_percent" binding:"gte=0,lte=100"`
	MaxDiscountForSales float64 `json:"max_discount_for_sales" binding:"gte=0,lte=100"`
	MaxDiscountForAdmin float64 `json:"max_discount_for_admin" binding:"gte=0,lte=100"`
}

type UpdateProductRequest = CreateProductRequest

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// --- Interface ---

type ProductService interface {
	Create(ctx context.Context, userID string, req CreateProductRequest) (*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, page, limit int, search, category string) ([]model.Product, int64, error)
	ListLowStock(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, userID string, id string, req UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, userID string, id string) error
	// AdjustStock applies a manual signed correction (stocktake, damage)
	AdjustStock(ctx context.Context, userID string, id string, delta int) (*model.Product, error)
	Movements(ctx context.Context, id string, page, limit int) ([]model.StockMovement, int64, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	auditRepo    repository.AuditRepository
	stock        StockService
	txManager    repository.TransactionManager
	events       EventPublisher
	logger       *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
	stock StockService,
	txManager repository.TransactionManager,
	events EventPublisher,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		auditRepo:    auditRepo,
		stock:        stock,
		txManager:    txManager,
		events:       events,
		logger:       logger,
	}
}

func applyProductRequest(product *model.Product, req CreateProductRequest) {
	product.Name = req.Name
	product.Barcode = req.Barcode
	product.Price = req.Price
	product.Category = req.Category
	product.Description = req.Description
	product.Size = req.Size
	product.Color = req.Color
	product.Brand = req.Brand
	product.Image = req.Image
	product.DiscountEnabled = req.DiscountEnabled
	product.DiscountPercent = req.DiscountPercent
	if req.Gender != "" {
		product.Gender = req.Gender
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.MaxDiscountForSales > 0 {
		product.MaxDiscountForSales = req.MaxDiscountForSales
	}
	if req.MaxDiscountForAdmin > 0 {
		product.MaxDiscountForAdmin = req.MaxDiscountForAdmin
	}
}

func (s *productService) Create(ctx context.Context, userID string, req CreateProductRequest) (*model.Product, error) {
	// Barcode uniqueness is also enforced by the index; the pre-check just
	// yields a friendlier error than a raw constraint violation.
	if _, err := s.productRepo.FindByBarcode(ctx, req.Barcode); err == nil {
		return nil, repository.ErrDuplicateBarcode
	} else if !errors.Is(err, repository.ErrProductNotFound) {
		return nil, err
	}

	product := &model.Product{
		Stock:               req.Stock,
		MinStock:            10,
		Gender:              model.GenderUnisex,
		MaxDiscountForSales: 10,
		MaxDiscountForAdmin: 20,
	}
	applyProductRequest(product, req)

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionCreateProduct, product, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("barcode", product.Barcode),
		zap.String("name", product.Name),
	)
	return product, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrProductNotFound, id)
	}
	return s.productRepo.FindByID(ctx, productID)
}

func (s *productService) List(ctx context.Context, page, limit int, search, category string) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.productRepo.List(ctx, page, limit, search, category)
}

func (s *productService) ListLowStock(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.ListLowStock(ctx)
}

func (s *productService) Update(ctx context.Context, userID string, id string, req UpdateProductRequest) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrProductNotFound, id)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Barcode != product.Barcode {
		if other, findErr := s.productRepo.FindByBarcode(ctx, req.Barcode); findErr == nil && other.ID != product.ID {
			return nil, repository.ErrDuplicateBarcode
		} else if findErr != nil && !errors.Is(findErr, repository.ErrProductNotFound) {
			return nil, findErr
		}
	}

	// Stock is deliberately not editable here; it only moves through
	// AdjustStock, sales, and purchase receipts.
	applyProductRequest(product, req)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Update(txCtx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return s.audit(txCtx, userID, model.ActionUpdateProduct, product, req)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, userID string, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid id", repository.ErrProductNotFound, id)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Delete(txCtx, productID); err != nil {
			return err
		}
		return s.audit(txCtx, userID, model.ActionDeleteProduct, product, map[string]interface{}{"deleted": true})
	})
}

func (s *productService) AdjustStock(ctx context.Context, userID string, id string, delta int) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrProductNotFound, id)
	}

	var product *model.Product
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.stock.Adjust(txCtx, productID, delta, model.ReasonManualAdjust, nil); err != nil {
			return err
		}
		product, err = s.productRepo.FindByID(txCtx, productID)
		if err != nil {
			return err
		}
		return s.audit(txCtx, userID, model.ActionAdjustStock, product, map[string]interface{}{
			"delta":       delta,
			"stock_after": product.Stock,
		})
	})
	if err != nil {
		return nil, err
	}

	if product.IsLowStock() {
		s.events.Publish("stock.low", map[string]interface{}{
			"product_id": product.ID.String(),
			"name":       product.Name,
			"stock":      product.Stock,
			"min_stock":  product.MinStock,
		})
	}
	return product, nil
}

func (s *productService) Movements(ctx context.Context, id string, page, limit int) ([]model.StockMovement, int64, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q is not a valid id", repository.ErrProductNotFound, id)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.movementRepo.ListByProduct(ctx, productID, page, limit)
}

func (s *productService) audit(ctx context.Context, userID, action string, product *model.Product, details interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   product.ID.String(),
		EntityName: product.Name,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
