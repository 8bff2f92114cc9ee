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

type purchaseFixture struct {
	products *fakeProductRepo
	orders   *fakeOrderRepo
	supplier *fakeSupplierRepo
	counter  *fakeCounterRepo
	audit    *fakeAuditRepo
	events   *recordingPublisher
	service  PurchaseService
}

func newPurchaseFixture(products []*model.Product, orders []*model.PurchaseOrder, suppliers []*model.Supplier) *purchaseFixture {
	productRepo := newFakeProductRepo(products...)
	orderRepo := newFakeOrderRepo(orders...)
	supplierRepo := newFakeSupplierRepo(suppliers...)
	counterRepo := newFakeCounterRepo()
	auditRepo := &fakeAuditRepo{}
	movementRepo := &fakeMovementRepo{}
	events := &recordingPublisher{}
	logger := zap.NewNop()

	stock := NewStockService(productRepo, movementRepo, logger)
	svc := NewPurchaseService(
		orderRepo, supplierRepo, productRepo, counterRepo, auditRepo,
		stock, &fakeTxManager{products: productRepo}, events, logger,
	)
	return &purchaseFixture{
		products: productRepo,
		orders:   orderRepo,
		supplier: supplierRepo,
		counter:  counterRepo,
		audit:    auditRepo,
		events:   events,
		service:  svc,
	}
}

func pendingOrder(items ...model.PurchaseOrderItem) *model.PurchaseOrder {
	return &model.PurchaseOrder{
		ID:           uuid.New(),
		OrderNumber:  "PO-2609-00001",
		SupplierID:   uuid.New(),
		SupplierName: "Trendy Textiles",
		Items:        items,
		Status:       model.OrderStatusPending,
	}
}

func TestReceiveRestocksAllItems(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 3, MinStock: 2}
	jeans := &model.Product{ID: uuid.New(), Name: "Jeans", Barcode: "JN-1", Stock: 0, MinStock: 2}
	order := pendingOrder(
		model.PurchaseOrderItem{ProductID: shirt.ID, ProductName: "Shirt", Quantity: 10},
		model.PurchaseOrderItem{ProductID: jeans.ID, ProductName: "Jeans", Quantity: 5},
	)
	f := newPurchaseFixture([]*model.Product{shirt, jeans}, []*model.PurchaseOrder{order}, nil)

	received, err := f.service.Receive(context.Background(), uuid.NewString(), order.ID.String())
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedDate)
	assert.WithinDuration(t, time.Now(), *received.ReceivedDate, time.Minute)

	updatedShirt, err := f.products.FindByID(context.Background(), shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, updatedShirt.Stock)

	updatedJeans, err := f.products.FindByID(context.Background(), jeans.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, updatedJeans.Stock)

	stored, err := f.orders.FindByIDWithItems(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusReceived, stored.Status)

	assert.Contains(t, f.events.names(), "order.received")
	assert.Contains(t, f.audit.actions(), model.ActionReceivePurchaseOrder)
}

func TestReceiveAlreadyReceivedOrder(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 13}
	order := pendingOrder(model.PurchaseOrderItem{ProductID: product.ID, ProductName: "Shirt", Quantity: 10})
	order.Status = model.OrderStatusReceived
	f := newPurchaseFixture([]*model.Product{product}, []*model.PurchaseOrder{order}, nil)

	_, err := f.service.Receive(context.Background(), uuid.NewString(), order.ID.String())
	assert.ErrorIs(t, err, ErrOrderAlreadyReceived)

	// Stock untouched: a repeated receive must never double-count.
	stored, findErr := f.products.FindByID(context.Background(), product.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 13, stored.Stock)
	assert.Empty(t, f.events.names())
}

func TestReceiveCancelledOrder(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 3}
	order := pendingOrder(model.PurchaseOrderItem{ProductID: product.ID, ProductName: "Shirt", Quantity: 10})
	order.Status = model.OrderStatusCancelled
	f := newPurchaseFixture([]*model.Product{product}, []*model.PurchaseOrder{order}, nil)

	_, err := f.service.Receive(context.Background(), uuid.NewString(), order.ID.String())
	assert.ErrorIs(t, err, ErrOrderCancelled)

	stored, findErr := f.products.FindByID(context.Background(), product.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 3, stored.Stock)
}

func TestReceiveUnknownOrder(t *testing.T) {
	f := newPurchaseFixture(nil, nil, nil)

	_, err := f.service.Receive(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestReceiveMalformedID(t *testing.T) {
	f := newPurchaseFixture(nil, nil, nil)

	_, err := f.service.Receive(context.Background(), uuid.NewString(), "does-not-exist")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestReceiveRollsBackWhenLineItemFails(t *testing.T) {
	shirt := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 3}
	missing := uuid.New() // product deleted after the order was placed
	order := pendingOrder(
		model.PurchaseOrderItem{ProductID: shirt.ID, ProductName: "Shirt", Quantity: 10},
		model.PurchaseOrderItem{ProductID: missing, ProductName: "Ghost", Quantity: 5},
	)
	f := newPurchaseFixture([]*model.Product{shirt}, []*model.PurchaseOrder{order}, nil)

	_, err := f.service.Receive(context.Background(), uuid.NewString(), order.ID.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	// Nothing committed: first line's increment rolled back, status still pending.
	stored, findErr := f.products.FindByID(context.Background(), shirt.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 3, stored.Stock)

	storedOrder, findErr := f.orders.FindByIDWithItems(context.Background(), order.ID)
	require.NoError(t, findErr)
	assert.Equal(t, model.OrderStatusPending, storedOrder.Status)
	assert.Empty(t, f.events.names())
}

func TestReceiveTwiceOnlyCountsOnce(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Stock: 0}
	order := pendingOrder(model.PurchaseOrderItem{ProductID: product.ID, ProductName: "Shirt", Quantity: 10})
	f := newPurchaseFixture([]*model.Product{product}, []*model.PurchaseOrder{order}, nil)

	_, err := f.service.Receive(context.Background(), uuid.NewString(), order.ID.String())
	require.NoError(t, err)

	_, err = f.service.Receive(context.Background(), uuid.NewString(), order.ID.String())
	assert.ErrorIs(t, err, ErrOrderAlreadyReceived)

	stored, findErr := f.products.FindByID(context.Background(), product.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 10, stored.Stock)
}

func TestCreateAssignsSequentialOrderNumbers(t *testing.T) {
	supplier := &model.Supplier{ID: uuid.New(), Name: "Trendy Textiles"}
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1", Price: 19.99}
	f := newPurchaseFixture([]*model.Product{product}, nil, []*model.Supplier{supplier})

	req := CreatePurchaseOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []PurchaseItemRequest{
			{ProductID: product.ID.String(), Quantity: 4, UnitPrice: 12.50},
		},
	}

	first, err := f.service.Create(context.Background(), uuid.NewString(), req)
	require.NoError(t, err)
	second, err := f.service.Create(context.Background(), uuid.NewString(), req)
	require.NoError(t, err)

	prefix := "PO-" + time.Now().Format("0601")
	assert.Equal(t, fmt.Sprintf("%s-%05d", prefix, 1), first.OrderNumber)
	assert.Equal(t, fmt.Sprintf("%s-%05d", prefix, 2), second.OrderNumber)

	assert.Equal(t, model.OrderStatusPending, first.Status)
	assert.Equal(t, "Trendy Textiles", first.SupplierName)
	assert.Equal(t, "50", first.TotalAmount.String())
	assert.Equal(t, "Shirt", first.Items[0].ProductName)
}

func TestCreateUnknownSupplier(t *testing.T) {
	product := &model.Product{ID: uuid.New(), Name: "Shirt", Barcode: "SH-1"}
	f := newPurchaseFixture([]*model.Product{product}, nil, nil)

	_, err := f.service.Create(context.Background(), uuid.NewString(), CreatePurchaseOrderRequest{
		SupplierID: uuid.NewString(),
		Items:      []PurchaseItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 5}},
	})
	assert.ErrorIs(t, err, repository.ErrSupplierNotFound)
}

func TestCreateUnknownProduct(t *testing.T) {
	supplier := &model.Supplier{ID: uuid.New(), Name: "Trendy Textiles"}
	f := newPurchaseFixture(nil, nil, []*model.Supplier{supplier})

	_, err := f.service.Create(context.Background(), uuid.NewString(), CreatePurchaseOrderRequest{
		SupplierID: supplier.ID.String(),
		Items:      []PurchaseItemRequest{{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 5}},
	})
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCancelPendingOrder(t *testing.T) {
	order := pendingOrder()
	f := newPurchaseFixture(nil, []*model.PurchaseOrder{order}, nil)

	cancelled, err := f.service.Cancel(context.Background(), uuid.NewString(), order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
}

func TestCancelReceivedOrder(t *testing.T) {
	order := pendingOrder()
	order.Status = model.OrderStatusReceived
	f := newPurchaseFixture(nil, []*model.PurchaseOrder{order}, nil)

	_, err := f.service.Cancel(context.Background(), uuid.NewString(), order.ID.String())
	assert.ErrorIs(t, err, ErrOrderNotPending)
}

func TestGetMalformedIDIsNotFound(t *testing.T) {
	f := newPurchaseFixture(nil, nil, nil)

	_, err := f.service.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
