package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"beautyStore/entities"
	"beautyStore/models"
	"beautyStore/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	mu        sync.Mutex
	rows      []models.Product_db
	nextId    int64
	inUse     map[int64]bool
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	updates   []models.RowPatch
}

func (f *fakeProducts) ListProducts(ctx context.Context) ([]models.Product_db, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Product_db{}, f.rows...), nil
}

func (f *fakeProducts) CreateProduct(ctx context.Context, patch models.RowPatch) (models.Product_db, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Product_db{}, f.createErr
	}
	f.nextId++
	row := models.Product_db{Id: 100 + f.nextId}
	if v, ok := patch.Value("name"); ok {
		row.Name = v.(string)
	}
	if v, ok := patch.Value("price"); ok {
		row.Price = v.(decimal.Decimal)
	}
	if v, ok := patch.Value("in_stock"); ok {
		row.InStock = v.(bool)
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeProducts) UpdateProduct(ctx context.Context, id int64, patch models.RowPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, patch)
	return nil
}

func (f *fakeProducts) DeleteProduct(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inUse[id] {
		return fmt.Errorf("%w: product %d", models.ErrProductInUse, id)
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return nil
}

type fakeCategories struct {
	rows    []models.Category_db
	listErr error
	nextId  int64
}

func (f *fakeCategories) ListCategories(ctx context.Context) ([]models.Category_db, error) {
	return f.rows, f.listErr
}

func (f *fakeCategories) CreateCategory(ctx context.Context, patch models.RowPatch) (models.Category_db, error) {
	f.nextId++
	row := models.Category_db{Id: f.nextId}
	if v, ok := patch.Value("slug"); ok {
		row.Slug = v.(string)
	}
	if v, ok := patch.Value("name"); ok {
		row.Name = v.(string)
	}
	return row, nil
}

func (f *fakeCategories) UpdateCategory(ctx context.Context, id int64, patch models.RowPatch) error {
	return nil
}

func (f *fakeCategories) DeleteCategory(ctx context.Context, id int64) error {
	return nil
}

type fakeBrands struct {
	rows    []models.Brand_db
	listErr error
	nextId  int64
}

func (f *fakeBrands) ListBrands(ctx context.Context) ([]models.Brand_db, error) {
	return f.rows, f.listErr
}

func (f *fakeBrands) CreateBrand(ctx context.Context, patch models.RowPatch) (models.Brand_db, error) {
	f.nextId++
	row := models.Brand_db{Id: f.nextId}
	if v, ok := patch.Value("slug"); ok {
		row.Slug = v.(string)
	}
	if v, ok := patch.Value("name"); ok {
		row.Name = v.(string)
	}
	return row, nil
}

func (f *fakeBrands) UpdateBrand(ctx context.Context, id int64, patch models.RowPatch) error {
	return nil
}

func (f *fakeBrands) DeleteBrand(ctx context.Context, id int64) error {
	return nil
}

type fakeOrders struct {
	mu          sync.Mutex
	orders      []models.Order_db
	items       []models.OrderItem_db
	listErr     error
	createErr   error
	itemsErr    error
	statusErr   error
	statusCalls int
	listCalls   int

	// beforeCreate runs outside the lock so a test can hold the write open
	beforeCreate func()
}

func (f *fakeOrders) ListOrders(ctx context.Context) (models.OrderSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return models.OrderSet{}, f.listErr
	}
	// newest first, like the backend
	set := models.OrderSet{Items: append([]models.OrderItem_db{}, f.items...)}
	for i := len(f.orders) - 1; i >= 0; i-- {
		set.Orders = append(set.Orders, f.orders[i])
	}
	return set, nil
}

func (f *fakeOrders) CreateOrder(ctx context.Context, order models.Order_db) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrders) CreateOrderItems(ctx context.Context, items []models.OrderItem_db) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.itemsErr != nil {
		return f.itemsErr
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeOrders) UpdateOrderStatus(ctx context.Context, orderId string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return f.statusErr
	}
	for i := range f.orders {
		if f.orders[i].Id == orderId {
			f.orders[i].Status = status
		}
	}
	return nil
}

func (f *fakeOrders) setListErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *fakeOrders) addRemote(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, models.Order_db{Id: id, Status: "pending", Total: decimal.NewFromInt(1)})
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Dispatch(order entities.Order) {
	m.Called(order)
}

type testEnv struct {
	store      *Store
	products   *fakeProducts
	categories *fakeCategories
	brands     *fakeBrands
	orders     *fakeOrders
	local      *repository.MemoryLocalStore
	notifier   *mockNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		products:   &fakeProducts{inUse: map[int64]bool{}},
		categories: &fakeCategories{},
		brands:     &fakeBrands{},
		orders:     &fakeOrders{},
		local:      repository.NewMemoryLocalStore(),
		notifier:   &mockNotifier{},
	}
	env.store = env.open(t)
	return env
}

// open builds a new Store over the same backends, which is how a reload
// looks to the container.
func (env *testEnv) open(t *testing.T) *Store {
	t.Helper()
	clock := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	s, err := NewStore(context.Background(), StoreParams{
		Products:   env.products,
		Categories: env.categories,
		Brands:     env.brands,
		Orders:     env.orders,
		Local:      env.local,
		Notifier:   env.notifier,
		Now:        func() time.Time { return clock },
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func product(id int64, price int64) entities.Product {
	return entities.Product{
		Id:      id,
		Name:    fmt.Sprintf("Product %d", id),
		Price:   decimal.NewFromInt(price),
		Images:  []string{},
		InStock: true,
	}
}

func productRow(id int64, name string, price int64, inStock bool) models.Product_db {
	return models.Product_db{Id: id, Name: name, Price: decimal.NewFromInt(price), InStock: inStock}
}
