package service

import (
	"context"
	"sync"
	"time"

	"fashionhub/internal/model"
	"fashionhub/internal/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. The transaction fake snapshots the product
// store before the callback and restores it on error, mimicking rollback.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		copied := *p
		repo.products[p.ID] = &copied
	}
	return repo
}

func (r *fakeProductRepo) snapshot() map[uuid.UUID]model.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[uuid.UUID]model.Product, len(r.products))
	for id, p := range r.products {
		snap[id] = *p
	}
	return snap
}

func (r *fakeProductRepo) restore(snap map[uuid.UUID]model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make(map[uuid.UUID]*model.Product, len(snap))
	for id, p := range snap {
		copied := p
		r.products[id] = &copied
	}
}

func (r *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Barcode == barcode {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int, _, _ string) ([]model.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return 0, repository.ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.PurchaseOrder
}

func newFakeOrderRepo(orders ...*model.PurchaseOrder) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
	for _, o := range orders {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		copied := *o
		repo.orders[o.ID] = &copied
	}
	return repo
}

func (r *fakeOrderRepo) Create(_ context.Context, order *model.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *model.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) FindByIDWithItems(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	return r.FindByIDWithItems(ctx, id)
}

func (r *fakeOrderRepo) List(_ context.Context, _, _ int, status string) ([]model.PurchaseOrder, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PurchaseOrder
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

type fakeSupplierRepo struct {
	mu        sync.Mutex
	suppliers map[uuid.UUID]*model.Supplier
}

func newFakeSupplierRepo(suppliers ...*model.Supplier) *fakeSupplierRepo {
	repo := &fakeSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
	for _, s := range suppliers {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		copied := *s
		repo.suppliers[s.ID] = &copied
	}
	return repo
}

func (r *fakeSupplierRepo) Create(_ context.Context, supplier *model.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	copied := *supplier
	r.suppliers[supplier.ID] = &copied
	return nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, supplier *model.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[supplier.ID]; !ok {
		return repository.ErrSupplierNotFound
	}
	copied := *supplier
	r.suppliers[supplier.ID] = &copied
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[id]; !ok {
		return repository.ErrSupplierNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil, repository.ErrSupplierNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSupplierRepo) List(_ context.Context, _, _ int) ([]model.Supplier, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[uuid.UUID]*model.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	copied := *sale
	r.sales[sale.ID] = &copied
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, repository.ErrSaleNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSaleRepo) List(_ context.Context, _, _ int, filter repository.SaleFilter) ([]model.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Sale
	for _, s := range r.sales {
		if filter.SalesPersonID != nil && (s.SalesPersonID == nil || *s.SalesPersonID != *filter.SalesPersonID) {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) Stats(_ context.Context, _, _ *time.Time) (*model.SalesStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &model.SalesStats{TotalSales: int64(len(r.sales))}, nil
}

type fakeCounterRepo struct {
	mu     sync.Mutex
	values map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{values: make(map[string]int64)}
}

func (r *fakeCounterRepo) Next(_ context.Context, scope string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[scope]++
	return r.values[scope], nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []model.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, movement *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID uuid.UUID, _, _ int) ([]model.StockMovement, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _, _ int, action string) ([]model.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AuditLog
	for _, e := range r.entries {
		if action == "" || e.Action == action {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		copied := *u
		repo.users[u.ID] = &copied
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) AdminExists(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == model.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

// fakeTxManager runs the callback directly. When a product repo is
// attached, it snapshots product state first and restores it if the
// callback fails, so tests observe rollback semantics.
type fakeTxManager struct {
	products *fakeProductRepo
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var snap map[uuid.UUID]model.Product
	if m.products != nil {
		snap = m.products.snapshot()
	}
	if err := fn(ctx); err != nil {
		if m.products != nil {
			m.products.restore(snap)
		}
		return err
	}
	return nil
}

type recordedEvent struct {
	Event string
	Data  interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Event: event, Data: data})
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event)
	}
	return out
}
