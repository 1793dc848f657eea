package usecase

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUser(ctx context.Context, userID string, orderID string) (model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindForUpdate(ctx context.Context, userID string, orderID string) (model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID string, paidAt time.Time) error {
	args := m.Called(ctx, orderID, paidAt)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	args := m.Called(ctx, orderID, status)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, items []model.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListWithProducts(ctx context.Context, userID string, page int, perPage int) ([]repo.CartLine, int64, error) {
	args := m.Called(ctx, userID, page, perPage)
	lines, _ := args.Get(0).([]repo.CartLine)
	return lines, args.Get(1).(int64), args.Error(2)
}

func (m *CartRepoMock) Upsert(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartRepoMock) Remove(ctx context.Context, userID string, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *CartRepoMock) ListForCheckout(ctx context.Context, userID string) ([]repo.CheckoutLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]repo.CheckoutLine)
	return lines, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) FindForUpdate(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) AdjustStock(ctx context.Context, productID string, delta int64) (model.Product, error) {
	args := m.Called(ctx, productID, delta)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *InventoryRepoMock) ListLowStock(ctx context.Context, threshold int64, page int, perPage int) ([]model.Product, int64, error) {
	args := m.Called(ctx, threshold, page, perPage)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	updated, _ := args.Get(0).(model.Product)
	return updated, args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

type FavoriteRepoMock struct{ mock.Mock }

func (m *FavoriteRepoMock) ListProducts(ctx context.Context, userID string, page int, perPage int) ([]model.Product, int64, error) {
	args := m.Called(ctx, userID, page, perPage)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *FavoriteRepoMock) Find(ctx context.Context, userID string, productID string) (model.Favorite, error) {
	args := m.Called(ctx, userID, productID)
	f, _ := args.Get(0).(model.Favorite)
	return f, args.Error(1)
}

func (m *FavoriteRepoMock) Create(ctx context.Context, fav model.Favorite) (model.Favorite, error) {
	args := m.Called(ctx, fav)
	f, _ := args.Get(0).(model.Favorite)
	return f, args.Error(1)
}

func (m *FavoriteRepoMock) Remove(ctx context.Context, userID string, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// =====================
// Tx（mockではなくfnをそのまま実行するfake）
// =====================

type txReposStub struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	inventory  repo.InventoryRepository
	products   repo.ProductRepository
}

func (r *txReposStub) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposStub) Carts() repo.CartRepository           { return r.carts }
func (r *txReposStub) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposStub) Products() repo.ProductRepository     { return r.products }

type TxManagerFake struct {
	repos *txReposStub
}

func (tm *TxManagerFake) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(tm.repos)
}

// =====================
// 部品
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// テストごとに連番のIDを返す
type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return g.prefix + "-" + string(rune('0'+g.n))
}

func newTestAudit(auditRepo repo.AuditLogRepository) *AuditRecorder {
	return NewAuditRecorder(auditRepo, &seqIDGen{prefix: "audit"}, &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}, zap.NewNop())
}

func assertHTTPError(t *testing.T, err error, status int, contains string) {
	t.Helper()

	assert.Error(t, err)
	he, ok := AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Contains(t, he.Message, contains)
	}
}
