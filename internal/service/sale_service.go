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

type SaleItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Discount  float64 `json:"discount" binding:"gte=0,lte=100"` // percent off this line
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

type CreateSaleRequest struct {
	Items            []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Tax              float64           `json:"tax" binding:"gte=0"`
	Discount         float64           `json:"discount" binding:"gte=0"` // whole-cart discount amount
	PaymentMethod    string            `json:"payment_method" binding:"required,oneof=CASH CREDIT_CARD DEBIT_CARD UPI"`
	CardLast4        string            `json:"card_last4"`
	UPITransactionID string            `json:"upi_transaction_id"`
	CustomerName     string            `json:"customer_name"`
	CustomerPhone    string            `json:"customer_phone"`
}

type SaleListQuery struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
	// SalesPersonID restricts results; handlers set it for non-admin callers
	SalesPersonID *uuid.UUID
}

// --- Interface ---

type SaleService interface {
	Create(ctx context.Context, userID, userName string, req CreateSaleRequest) (*model.Sale, error)
	Get(ctx context.Context, id string) (*model.Sale, error)
	List(ctx context.Context, q SaleListQuery) ([]model.Sale, int64, error)
	Stats(ctx context.Context, startDate, endDate *time.Time) (*model.SalesStats, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	counterRepo repository.CounterRepository
	auditRepo   repository.AuditRepository
	stock       StockService
	txManager   repository.TransactionManager
	events      EventPublisher
	logger      *zap.Logger
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	counterRepo repository.CounterRepository,
	auditRepo repository.AuditRepository,
	stock StockService,
	txManager repository.TransactionManager,
	events EventPublisher,
	logger *zap.Logger,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		counterRepo: counterRepo,
		auditRepo:   auditRepo,
		stock:       stock,
		txManager:   txManager,
		events:      events,
		logger:      logger,
	}
}

func (s *saleService) Create(ctx context.Context, userID, userName string, req CreateSaleRequest) (*model.Sale, error) {
	var sale *model.Sale
	var lowStock []model.Product

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		scope := "INV-" + now.Format("0601")
		seq, err := s.counterRepo.Next(txCtx, scope)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		var salesPersonID *uuid.UUID
		if parsed, err := uuid.Parse(userID); err == nil {
			salesPersonID = &parsed
		}

		subtotal := decimal.Zero
		items := make([]model.SaleItem, 0, len(req.Items))
		products := make([]*model.Product, 0, len(req.Items))
		for _, itemReq := range req.Items {
			pid, parseErr := uuid.Parse(itemReq.ProductID)
			if parseErr != nil {
				return fmt.Errorf("invalid product_id: %w", parseErr)
			}
			product, findErr := s.productRepo.FindByID(txCtx, pid)
			if findErr != nil {
				return fmt.Errorf("line item %s: %w", itemReq.ProductID, findErr)
			}
			products = append(products, product)

			items = append(items, model.SaleItem{
				ProductID:   pid,
				ProductName: product.Name,
				Quantity:    itemReq.Quantity,
				Price:       product.Price,
				Discount:    itemReq.Discount,
				Size:        itemReq.Size,
				Color:       itemReq.Color,
			})

			line := decimal.NewFromFloat(product.Price).
				Mul(decimal.NewFromInt(int64(itemReq.Quantity))).
				Mul(decimal.NewFromFloat(1 - itemReq.Discount/100))
			subtotal = subtotal.Add(line)
		}

		tax := decimal.NewFromFloat(req.Tax)
		discount := decimal.NewFromFloat(req.Discount)
		total := subtotal.Add(tax).Sub(discount)

		sale = &model.Sale{
			InvoiceNumber:    fmt.Sprintf("%s-%05d", scope, seq),
			Items:            items,
			Subtotal:         subtotal,
			Tax:              tax,
			Discount:         discount,
			Total:            total,
			PaymentMethod:    req.PaymentMethod,
			CardLast4:        req.CardLast4,
			UPITransactionID: req.UPITransactionID,
			CustomerName:     req.CustomerName,
			CustomerPhone:    req.CustomerPhone,
			SalesPersonID:    salesPersonID,
			SalesPersonName:  userName,
		}
		if err := s.saleRepo.Create(txCtx, sale); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		// Decrement stock per line. The adjustment rejects a would-be
		// negative result, so an oversold cart rolls the whole sale back.
		for i, item := range sale.Items {
			stockAfter, err := s.stock.Adjust(txCtx, item.ProductID, -item.Quantity, model.ReasonSale, &sale.ID)
			if err != nil {
				return fmt.Errorf("failed to sell %q: %w", item.ProductName, err)
			}
			if stockAfter <= products[i].MinStock {
				p := *products[i]
				p.Stock = stockAfter
				lowStock = append(lowStock, p)
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"invoice_number": sale.InvoiceNumber,
			"total":          sale.Total,
			"payment_method": sale.PaymentMethod,
			"items":          len(sale.Items),
		})
		entry := &model.AuditLog{
			UserID:     salesPersonID,
			Action:     model.ActionCreateSale,
			EntityID:   sale.ID.String(),
			EntityName: sale.InvoiceNumber,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish("sale.created", map[string]interface{}{
		"sale_id":        sale.ID.String(),
		"invoice_number": sale.InvoiceNumber,
		"total":          sale.Total,
	})
	for _, p := range lowStock {
		s.events.Publish("stock.low", map[string]interface{}{
			"product_id": p.ID.String(),
			"name":       p.Name,
			"stock":      p.Stock,
			"min_stock":  p.MinStock,
		})
	}

	s.logger.Info("sale completed",
		zap.String("invoice_number", sale.InvoiceNumber),
		zap.String("payment_method", sale.PaymentMethod),
		zap.Int("items", len(sale.Items)),
	)
	return sale, nil
}

func (s *saleService) Get(ctx context.Context, id string) (*model.Sale, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid id", repository.ErrSaleNotFound, id)
	}
	return s.saleRepo.FindByID(ctx, saleID)
}

func (s *saleService) List(ctx context.Context, q SaleListQuery) ([]model.Sale, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	filter := repository.SaleFilter{
		SalesPersonID: q.SalesPersonID,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
	}
	return s.saleRepo.List(ctx, q.Page, q.Limit, filter)
}

func (s *saleService) Stats(ctx context.Context, startDate, endDate *time.Time) (*model.SalesStats, error) {
	return s.saleRepo.Stats(ctx, startDate, endDate)
}
