package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"beautyStore/entities"
	"beautyStore/notifier"
	"beautyStore/repository"

	"go.uber.org/zap"
)

const DefaultPollInterval = 15 * time.Second

type StoreParams struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Brands     repository.BrandRepository
	Orders     repository.OrderRepository
	Local      repository.LocalStore
	Notifier   notifier.Notifier
	Log        *zap.Logger

	// AdminPasswordHash is a bcrypt hash. Empty means the built-in secret.
	AdminPasswordHash string
	PollInterval      time.Duration
	// OnNewOrders is called by the order watcher with the number of orders
	// that appeared since the previous poll.
	OnNewOrders func(n int)
	Now         func() time.Time

	// WhatsAppNumber receives cart inquiries. Empty means the shop default.
	WhatsAppNumber string
}

// Store is the application state container. It is safe for concurrent use;
// the lock is never held across a remote or local storage call.
type Store struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	orders     repository.OrderRepository
	saved      *repository.SavedDataRepository
	notifier   notifier.Notifier
	log        *zap.Logger

	adminHash    []byte
	pollInterval time.Duration
	onNewOrders  func(n int)
	now          func() time.Time
	whatsApp     string

	mu                 sync.RWMutex
	productList        []entities.Product
	categoryList       []entities.Category
	brandList          []entities.Brand
	orderList          []entities.Order
	productsLoading    bool
	categoriesLoading  bool
	brandsLoading      bool
	ordersLoading      bool
	cart               []entities.CartItem
	favorites          []int64
	savedOrders        []entities.SavedOrder
	savedCustomer      *entities.SavedCustomer
	cartOpen           bool
	orderFormOpen      bool
	adminAuthenticated bool
	lastOrderMillis    int64
	watcher            *OrderWatcher

	// serializes read-modify-write cycles against the local store
	localMu sync.Mutex
}

// NewStore builds a Store and rehydrates the persisted cart, favorites,
// admin flag and saved order history from p.Local.
func NewStore(ctx context.Context, p StoreParams) (*Store, error) {
	if p.Products == nil || p.Categories == nil || p.Brands == nil || p.Orders == nil {
		return nil, errors.New("all repositories must be non-nil")
	}
	if p.Local == nil {
		p.Local = repository.NewMemoryLocalStore()
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	if p.Notifier == nil {
		p.Notifier = notifier.Disabled{}
	}
	if p.PollInterval <= 0 {
		p.PollInterval = DefaultPollInterval
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	hash := []byte(p.AdminPasswordHash)
	if len(hash) == 0 {
		hash = defaultAdminHash()
	}

	s := &Store{
		products:     p.Products,
		categories:   p.Categories,
		brands:       p.Brands,
		orders:       p.Orders,
		saved:        repository.NewSavedDataRepository(p.Local, log),
		notifier:     p.Notifier,
		log:          log.Named("store"),
		adminHash:    hash,
		pollInterval: p.PollInterval,
		onNewOrders:  p.OnNewOrders,
		now:          p.Now,
		whatsApp:     p.WhatsAppNumber,
		productList:  []entities.Product{},
		categoryList: []entities.Category{},
		brandList:    []entities.Brand{},
		orderList:    []entities.Order{},
		cart:         []entities.CartItem{},
		favorites:    []int64{},
		savedOrders:  []entities.SavedOrder{},
	}
	if s.onNewOrders == nil {
		s.onNewOrders = func(n int) {
			s.log.Info("new orders received", zap.Int("count", n))
		}
	}

	snap := s.saved.Snapshot(ctx)
	if snap.Cart != nil {
		s.cart = cloneCart(snap.Cart)
	}
	for _, id := range snap.Favorites {
		if !containsID(s.favorites, id) {
			s.favorites = append(s.favorites, id)
		}
	}
	s.adminAuthenticated = snap.IsAdminAuthenticated
	s.LoadSavedData(ctx)

	if s.adminAuthenticated {
		s.mu.Lock()
		s.startWatcherLocked()
		s.mu.Unlock()
	}
	return s, nil
}

// Close stops the order watcher, if running.
func (s *Store) Close() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

func (s *Store) SetCartOpen(open bool) {
	s.mu.Lock()
	s.cartOpen = open
	s.mu.Unlock()
}

func (s *Store) IsCartOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartOpen
}

func (s *Store) SetOrderFormOpen(open bool) {
	s.mu.Lock()
	s.orderFormOpen = open
	s.mu.Unlock()
}

func (s *Store) IsOrderFormOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderFormOpen
}

// persist writes the cart, favorites and admin flag snapshot. The snapshot
// is taken after localMu is held so the last writer always stores the
// latest state.
func (s *Store) persist() {
	s.localMu.Lock()
	defer s.localMu.Unlock()

	s.mu.RLock()
	snap := entities.Snapshot{
		Cart:                 cloneCart(s.cart),
		Favorites:            append([]int64{}, s.favorites...),
		IsAdminAuthenticated: s.adminAuthenticated,
	}
	s.mu.RUnlock()

	if err := s.saved.SaveSnapshot(context.Background(), snap); err != nil {
		s.log.Warn("persist snapshot", zap.Error(err))
	}
}

func cloneCart(items []entities.CartItem) []entities.CartItem {
	out := make([]entities.CartItem, len(items))
	copy(out, items)
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
