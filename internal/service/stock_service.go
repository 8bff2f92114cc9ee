package service

import (
	"context"
	"fmt"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockService applies signed deltas to product stock and keeps the
// movement ledger in step. It is deliberately not idempotent: callers
// invoke it exactly once per logical event, inside the event's transaction.
type StockService interface {
	// Adjust returns the stock level after the change.
	Adjust(ctx context.Context, productID uuid.UUID, delta int, reason string, referenceID *uuid.UUID) (int, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	logger       *zap.Logger
}

func NewStockService(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	logger *zap.Logger,
) StockService {
	return &stockService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

func (s *stockService) Adjust(ctx context.Context, productID uuid.UUID, delta int, reason string, referenceID *uuid.UUID) (int, error) {
	if delta == 0 {
		return 0, ErrZeroAdjustment
	}

	stockAfter, err := s.productRepo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return 0, err
	}

	movementType := model.MovementIn
	quantity := delta
	if delta < 0 {
		movementType = model.MovementOut
		quantity = -delta
	}

	movement := &model.StockMovement{
		ProductID:   productID,
		ReferenceID: referenceID,
		Type:        movementType,
		Reason:      reason,
		Quantity:    quantity,
		StockAfter:  stockAfter,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return 0, fmt.Errorf("failed to record stock movement: %w", err)
	}

	s.logger.Debug("stock adjusted",
		zap.String("product_id", productID.String()),
		zap.Int("delta", delta),
		zap.Int("stock_after", stockAfter),
		zap.String("reason", reason),
	)

	return stockAfter, nil
}
