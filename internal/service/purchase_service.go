package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type PurchaseItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gte=0"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID       string                `json:"supplier_id" binding:"required"`
	Items            []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	PaidAmount       float64               `json:"paid_amount" binding:"gte=0"`
	PaymentStatus    string                `json:"payment_status" binding:"omitempty,oneof=unpaid partial paid"`
	ExpectedDelivery *time.Time            `json:"expected_delivery"`
	Notes            string                `json:"notes"`
}

type UpdatePurchaseOrderRequest struct {
	PaidAmount       *float64   `json:"paid_amount" binding:"omitempty,gte=0"`
	PaymentStatus    string     `json:"payment_status" binding:"omitempty,oneof=unpaid partial paid"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Notes            *string    `json:"notes"`
}

// --- Interface ---

type PurchaseService interface {
	Create(ctx context.Context, userID string, req CreatePurchaseOrderRequest) (*model.PurchaseOrder, error)
	Get(ctx context.Context, id string) (*model.PurchaseOrder, error)
	List(ctx context.Context, page, limit int, status string) ([]model.PurchaseOrder, int64, error)
	Update(ctx context.Context, userID string, id string, req UpdatePurchaseOrderRequest) (*model.PurchaseOrder, error)
	Delete(ctx context.Context, userID string, id string) error
	// Receive transitions a pending order to received and restocks every
	// line item, atomically: either all stock increments and the status
	// flip commit together, or none do.
	Receive(ctx context.Context, userID string, id string) (*model.PurchaseOrder, error)
	Cancel(ctx context.Context, userID string, id string) (*model.PurchaseOrder, error)
}

type purchaseService struct {
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	counterRepo  repository.CounterRepository
	auditRepo    repository.AuditRepository
	stock        StockService
	txManager    repository.TransactionManager
	events       EventPublisher
	logger       *zap.Logger
}

func NewPurchaseService(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	counterRepo repository.CounterRepository,
	auditRepo repository.AuditRepository,
	stock StockService,
	txManager repository.TransactionManager,
	events EventPublisher,
	logger *zap.Logger,
) PurchaseService {
	return &purchaseService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		counterRepo:  counterRepo,
		auditRepo:    auditRepo,
		stock:        stock,
		txManager:    txManager,
		events:       events,
		logger:       logger,
	}
}

// nextOrderNumber formats PO-YYMM-NNNNN from the month-scoped counter
func (s *purchaseService) nextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	scope := "PO-" + now.Format("0601")
	seq, err := s.counterRepo.Next(ctx, scope)
	if err != nil {
		return "", fmt.Errorf("failed to allocate order number: %w", err)
	}
	return fmt.Sprintf("%s-%05d", scope, seq), nil
}

func (s *purchaseService) Create(ctx context.Context, userID string, req CreatePurchaseOrderRequest) (*model.PurchaseOrder, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}

	var order *model.PurchaseOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		supplier, err := s.supplierRepo.FindByID(txCtx, supplierID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		items := make([]model.PurchaseOrderItem, 0, len(req.Items))
		for _, itemReq := range req.Items {
			pid, parseErr := uuid.Parse(itemReq.ProductID)
			if parseErr != nil {
				return fmt.Errorf("invalid product_id: %w", parseErr)
			}
			product, findErr := s.productRepo.FindByID(txCtx, pid)
			if findErr != nil {
				return fmt.Errorf("line item %s: %w", itemReq.ProductID, findErr)
			}
			items = append(items, model.PurchaseOrderItem{
				ProductID:   pid,
				ProductName: product.Name,
				Quantity:    itemReq.Quantity,
				UnitPrice:   itemReq.UnitPrice,
				Size:        itemReq.Size,
				Color:       itemReq.Color,
			})
			lineTotal := decimal.NewFromFloat(itemReq.UnitPrice).Mul(decimal.NewFromInt(int64(itemReq.Quantity)))
			total = total.Add(lineTotal)
		}

		now := time.Now()
		orderNumber, err := s.nextOrderNumber(txCtx, now)
		if err != nil {
			return err
		}

		paymentStatus := req.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = model.PaymentStatusUnpaid
		}

		order = &model.PurchaseOrder{
			OrderNumber:      orderNumber,
			SupplierID:       supplier.ID,
			SupplierName:     supplier.Name,
			Items:            items,
			TotalAmount:      total,
			PaidAmount:       decimal.NewFromFloat(req.PaidAmount),
			Status:           model.OrderStatusPending,
			PaymentStatus:    paymentStatus,
			ExpectedDelivery: req.ExpectedDelivery,
			Notes:            req.Notes,
		}
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}

		return s.audit(txCtx, userID, model.ActionCreatePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"supplier":     supplier.Name,
			"total_amount": order.TotalAmount,
			"items":        len(order.Items),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("supplier", order.SupplierName),
	)
	return order, nil
}

func (s *purchaseService) Get(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrOrderNotFound, id)
	}
	return s.orderRepo.FindByIDWithItems(ctx, orderID)
}

func (s *purchaseService) List(ctx context.Context, page, limit int, status string) ([]model.PurchaseOrder, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.orderRepo.List(ctx, page, limit, status)
}

func (s *purchaseService) Update(ctx context.Context, userID string, id string, req UpdatePurchaseOrderRequest) (*model.PurchaseOrder, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrOrderNotFound, id)
	}

	var order *model.PurchaseOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}

		if req.PaidAmount != nil {
			order.PaidAmount = decimal.NewFromFloat(*req.PaidAmount)
		}
		if req.PaymentStatus != "" {
			order.PaymentStatus = req.PaymentStatus
		}
		if req.ExpectedDelivery != nil {
			order.ExpectedDelivery = req.ExpectedDelivery
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}

		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}

		return s.audit(txCtx, userID, model.ActionUpdatePurchaseOrder, order.ID.String(), order.OrderNumber, req)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *purchaseService) Delete(ctx context.Context, userID string, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid id", repository.ErrOrderNotFound, id)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByIDWithItems(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := s.orderRepo.Delete(txCtx, orderID); err != nil {
			return err
		}
		return s.audit(txCtx, userID, model.ActionDeletePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"status": order.Status,
		})
	})
}

func (s *purchaseService) Receive(ctx context.Context, userID string, id string) (*model.PurchaseOrder, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrOrderNotFound, id)
	}

	var order *model.PurchaseOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// Row lock serializes concurrent receives of the same order.
		order, err = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}

		switch order.Status {
		case model.OrderStatusReceived:
			return ErrOrderAlreadyReceived
		case model.OrderStatusCancelled:
			return ErrOrderCancelled
		}

		// Restock every line in stored sequence. Any failure (including a
		// product deleted since ordering) rolls the whole receipt back.
		for _, item := range order.Items {
			if _, err := s.stock.Adjust(txCtx, item.ProductID, item.Quantity, model.ReasonPurchaseReceipt, &order.ID); err != nil {
				return fmt.Errorf("failed to restock %q: %w", item.ProductName, err)
			}
		}

		now := time.Now()
		order.Status = model.OrderStatusReceived
		order.ReceivedDate = &now
		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}

		return s.audit(txCtx, userID, model.ActionReceivePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"items":         len(order.Items),
			"received_date": now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish("order.received", map[string]interface{}{
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
		"supplier":     order.SupplierName,
	})
	s.logger.Info("purchase order received",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

func (s *purchaseService) Cancel(ctx context.Context, userID string, id string) (*model.PurchaseOrder, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrOrderNotFound, id)
	}

	var order *model.PurchaseOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending {
			return ErrOrderNotPending
		}

		order.Status = model.OrderStatusCancelled
		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to cancel purchase order: %w", err)
		}

		return s.audit(txCtx, userID, model.ActionCancelPurchaseOrder, order.ID.String(), order.OrderNumber, nil)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// audit appends an AuditLog row inside the caller's transaction
func (s *purchaseService) audit(ctx context.Context, userID, action, entityID, entityName string, details interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
