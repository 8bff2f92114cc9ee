package service

import (
	"context"
	"testing"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStockFixture(products ...*model.Product) (StockService, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	return NewStockService(productRepo, movementRepo, zap.NewNop()), productRepo, movementRepo
}

func TestAdjustRecordsMovement(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 5}
	stock, products, movements := newStockFixture(product)

	after, err := stock.Adjust(context.Background(), product.ID, 7, model.ReasonPurchaseReceipt, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, after)

	stored, err := products.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Stock)

	recorded, total, err := movements.ListByProduct(context.Background(), product.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, model.MovementIn, recorded[0].Type)
	assert.Equal(t, model.ReasonPurchaseReceipt, recorded[0].Reason)
	assert.Equal(t, 7, recorded[0].Quantity)
	assert.Equal(t, 12, recorded[0].StockAfter)
}

func TestAdjustNegativeDeltaRecordsOutMovement(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 5}
	stock, _, movements := newStockFixture(product)

	after, err := stock.Adjust(context.Background(), product.ID, -2, model.ReasonSale, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, after)

	recorded, _, err := movements.ListByProduct(context.Background(), product.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, model.MovementOut, recorded[0].Type)
	assert.Equal(t, 2, recorded[0].Quantity)
}

func TestAdjustRejectsNegativeResult(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 5}
	stock, products, movements := newStockFixture(product)

	_, err := stock.Adjust(context.Background(), product.ID, -6, model.ReasonSale, nil)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	stored, findErr := products.FindByID(context.Background(), product.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 5, stored.Stock)

	_, total, findErr := movements.ListByProduct(context.Background(), product.ID, 1, 20)
	require.NoError(t, findErr)
	assert.Zero(t, total)
}

func TestAdjustRejectsZeroDelta(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 5}
	stock, _, _ := newStockFixture(product)

	_, err := stock.Adjust(context.Background(), product.ID, 0, model.ReasonManualAdjust, nil)
	assert.ErrorIs(t, err, ErrZeroAdjustment)
}

func TestAdjustUnknownProduct(t *testing.T) {
	stock, _, _ := newStockFixture()

	_, err := stock.Adjust(context.Background(), uuid.New(), 1, model.ReasonManualAdjust, nil)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

// Stock stays non-negative and equal to the sum of accepted deltas for any
// sequence of adjustments.
func TestAdjustProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("stock equals initial plus accepted deltas and never goes negative", prop.ForAll(
		func(initial int, deltas []int) bool {
			product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: initial}
			stock, products, _ := newStockFixture(product)

			expected := initial
			for _, delta := range deltas {
				after, err := stock.Adjust(context.Background(), product.ID, delta, model.ReasonManualAdjust, nil)
				switch {
				case delta == 0:
					if err != ErrZeroAdjustment {
						return false
					}
				case expected+delta < 0:
					if err == nil {
						return false
					}
				default:
					if err != nil || after != expected+delta {
						return false
					}
					expected += delta
				}
			}

			stored, err := products.FindByID(context.Background(), product.ID)
			return err == nil && stored.Stock == expected && stored.Stock >= 0
		},
		gen.IntRange(0, 50),
		gen.SliceOf(gen.IntRange(-20, 20)),
	))

	properties.TestingRun(t)
}
