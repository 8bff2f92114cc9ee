package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type saleFixture struct {
	products *fakeProductRepo
	sales    *fakeSaleRepo
	audit    *fakeAuditRepo
	events   *recordingPublisher
	service  SaleService
}

func newSaleFixture(products ...*model.Product) *saleFixture {
	productRepo := newFakeProductRepo(products...)
	saleRepo := newFakeSaleRepo()
	counterRepo := newFakeCounterRepo()
	auditRepo := &fakeAuditRepo{}
	movementRepo := &fakeMovementRepo{}
	events := &recordingPublisher{}
	logger := zap.NewNop()

	stock := NewStockService(productRepo, movementRepo, logger)
	svc := NewSaleService(
		saleRepo, productRepo, counterRepo, auditRepo,
		stock, &fakeTxManager{products: productRepo}, events, logger,
	)
	return &saleFixture{products: productRepo, sales: saleRepo, audit: auditRepo, events: events, service: svc}
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 20, Stock: 10, MinStock: 2}
	f := newSaleFixture(shirt)

	sale, err := f.service.Create(context.Background(), uuid.NewString(), "Asha", CreateSaleRequest{
		Items:         []SaleItemRequest{{ProductID: shirt.ID.String(), Quantity: 3}},
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	prefix := "INV-" + time.Now().Format("0601")
	assert.Equal(t, fmt.Sprintf("%s-%05d", prefix, 1), sale.InvoiceNumber)
	assert.Equal(t, "60", sale.Subtotal.String())
	assert.Equal(t, "60", sale.Total.String())
	assert.Equal(t, "Asha", sale.SalesPersonName)

	stored, findErr := f.products.FindByID(context.Background(), shirt.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 7, stored.Stock)

	assert.Contains(t, f.events.names(), "sale.created")
	assert.NotContains(t, f.events.names(), "stock.low")
	assert.Contains(t, f.audit.actions(), model.ActionCreateSale)
}

func TestCreateSaleRejectsOversell(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 20, Stock: 2}
	f := newSaleFixture(shirt)

	_, err := f.service.Create(context.Background(), uuid.NewString(), "Asha", CreateSaleRequest{
		Items:         []SaleItemRequest{{ProductID: shirt.ID.String(), Quantity: 3}},
		PaymentMethod: "CASH",
	})
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	stored, findErr := f.products.FindByID(context.Background(), shirt.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 2, stored.Stock)
	assert.Empty(t, f.events.names())
}

func TestCreateSaleRollsBackEarlierLines(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 20, Stock: 10}
	jeans := &model.Product{ID: uuid.New(), Name: "Jeans", Barcode: "JN-1", Price: 40, Stock: 1}
	f := newSaleFixture(shirt, jeans)

	_, err := f.service.Create(context.Background(), uuid.NewString(), "Asha", CreateSaleRequest{
		Items: []SaleItemRequest{
			{ProductID: shirt.ID.String(), Quantity: 2},
			{ProductID: jeans.ID.String(), Quantity: 5},
		},
		PaymentMethod: "CASH",
	})
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	storedShirt, findErr := f.products.FindByID(context.Background(), shirt.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 10, storedShirt.Stock)

	storedJeans, findErr := f.products.FindByID(context.Background(), jeans.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 1, storedJeans.Stock)
}

func TestCreateSaleEmitsLowStockEvent(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 20, Stock: 6, MinStock: 5}
	f := newSaleFixture(shirt)

	_, err := f.service.Create(context.Background(), uuid.NewString(), "Asha", CreateSaleRequest{
		Items:         []SaleItemRequest{{ProductID: shirt.ID.String(), Quantity: 2}},
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	assert.Contains(t, f.events.names(), "stock.low")
}

func TestCreateSaleAppliesDiscounts(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 100, Stock: 10}
	f := newSaleFixture(shirt)

	sale, err := f.service.Create(context.Background(), uuid.NewString(), "Asha", CreateSaleRequest{
		Items:         []SaleItemRequest{{ProductID: shirt.ID.String(), Quantity: 2, Discount: 10}},
		Tax:           18,
		Discount:      20,
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)

	// 2 * 100 * 0.9 = 180, + 18 tax - 20 cart discount = 178
	assert.Equal(t, "180", sale.Subtotal.String())
	assert.Equal(t, "178", sale.Total.String())
}

func TestInvoiceNumbersAreSequential(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 20, Stock: 100}
	f := newSaleFixture(shirt)

	req := CreateSaleRequest{
		Items:         []SaleItemRequest{{ProductID: shirt.ID.String(), Quantity: 1}},
		PaymentMethod: "CASH",
	}

	var invoices []string
	for i := 0; i < 3; i++ {
		sale, err := f.service.Create(context.Background(), uuid.NewString(), "Asha", req)
		require.NoError(t, err)
		invoices = append(invoices, sale.InvoiceNumber)
	}

	prefix := "INV-" + time.Now().Format("0601")
	for i, invoice := range invoices {
		assert.Equal(t, fmt.Sprintf("%s-%05d", prefix, i+1), invoice)
	}
}

func TestListFiltersBySalesPerson(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 20, Stock: 100}
	f := newSaleFixture(shirt)

	firstSeller := uuid.New()
	secondSeller := uuid.New()
	req := CreateSaleRequest{
		Items:         []SaleItemRequest{{ProductID: shirt.ID.String(), Quantity: 1}},
		PaymentMethod: "CASH",
	}

	_, err := f.service.Create(context.Background(), firstSeller.String(), "First", req)
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), secondSeller.String(), "Second", req)
	require.NoError(t, err)

	mine, total, err := f.service.List(context.Background(), SaleListQuery{SalesPersonID: &firstSeller})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, "First", mine[0].SalesPersonName)
}

func TestGetSaleMalformedID(t *testing.T) {
	f := newSaleFixture()

	_, err := f.service.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrSaleNotFound)
}
