package services

import (
	"context"
	"strconv"

	"beautyStore/entities"
	"beautyStore/models"
	"beautyStore/repository"

	"go.uber.org/zap"
)

func (s *Store) FetchOrders(ctx context.Context) {
	s.fetchOrders(ctx)
}

// fetchOrders reports whether the list was replaced.
func (s *Store) fetchOrders(ctx context.Context) bool {
	s.mu.Lock()
	s.ordersLoading = true
	s.mu.Unlock()

	set, err := s.orders.ListOrders(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordersLoading = false
	if err != nil {
		s.log.Error("FetchOrders", zap.Error(err))
		return false
	}
	refs := make(map[int64]models.ProductRef_db, len(set.Products))
	for _, r := range set.Products {
		refs[r.Id] = r
	}
	list := make([]entities.Order, 0, len(set.Orders))
	for _, o := range set.Orders {
		list = append(list, repository.OrderFromRow(o, set.Items, refs))
	}
	s.orderList = list
	return true
}

func (s *Store) OrdersLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordersLoading
}

func (s *Store) Orders() []entities.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Order{}, s.orderList...)
}

func (s *Store) ordersCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orderList)
}

// AddOrder checks out the current cart. The header and the line items are
// two separate writes; a failed item write leaves the header behind. On any
// failure the returned order is nil and the cart is left as it was. On
// success only the checked-out quantities leave the cart.
//
// The notification is dispatched without waiting for its outcome.
func (s *Store) AddOrder(ctx context.Context, form entities.OrderFormData) (*entities.Order, error) {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return nil, models.ErrBadRequest
	}
	order := entities.Order{
		Id:        s.nextOrderIDLocked(),
		Items:     cloneCart(s.cart),
		Total:     cartTotal(s.cart),
		Customer:  form,
		CreatedAt: s.now(),
		Status:    entities.OrderPending,
	}
	s.mu.Unlock()

	if err := s.orders.CreateOrder(ctx, repository.OrderToRow(order)); err != nil {
		s.log.Error("AddOrder[1]", zap.String("orderId", order.Id), zap.Error(err))
		return nil, err
	}
	if err := s.orders.CreateOrderItems(ctx, repository.OrderItemsToRows(order)); err != nil {
		s.log.Error("AddOrder[2]", zap.String("orderId", order.Id), zap.Error(err))
		return nil, err
	}

	customer := entities.SavedCustomer{Name: form.Name, Phone: form.Phone}
	history := s.recordSavedOrder(ctx, entities.SavedOrder{
		Id:        order.Id,
		Items:     cloneCart(order.Items),
		Total:     order.Total,
		Customer:  customer,
		CreatedAt: order.CreatedAt,
	}, customer)

	s.mu.Lock()
	s.orderList = append([]entities.Order{order}, s.orderList...)
	s.savedOrders = history
	s.savedCustomer = &customer
	s.cart = subtractCart(s.cart, order.Items)
	s.mu.Unlock()
	s.persist()

	s.notifier.Dispatch(order)
	return &order, nil
}

// subtractCart removes the ordered quantities from cart. Lines that were
// added or raised after the order was taken keep the difference.
func subtractCart(cart, ordered []entities.CartItem) []entities.CartItem {
	taken := make(map[int64]int, len(ordered))
	for _, it := range ordered {
		taken[it.Product.Id] += it.Quantity
	}
	left := make([]entities.CartItem, 0, len(cart))
	for _, it := range cart {
		it.Quantity -= taken[it.Product.Id]
		if it.Quantity > 0 {
			left = append(left, it)
		}
	}
	return left
}

// recordSavedOrder prepends saved to the stored history and overwrites the
// saved customer. Local write failures are logged; the order already exists
// remotely.
func (s *Store) recordSavedOrder(ctx context.Context, saved entities.SavedOrder, customer entities.SavedCustomer) []entities.SavedOrder {
	s.localMu.Lock()
	defer s.localMu.Unlock()

	history := append([]entities.SavedOrder{saved}, s.saved.SavedOrders(ctx)...)
	if err := s.saved.SaveSavedOrders(ctx, history); err != nil {
		s.log.Warn("AddOrder: saving order history", zap.Error(err))
	}
	if err := s.saved.SaveSavedCustomer(ctx, customer); err != nil {
		s.log.Warn("AddOrder: saving customer", zap.Error(err))
	}
	return history
}

// UpdateOrderStatus rejects unknown statuses. Any known status may follow
// any other.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderId string, status entities.OrderStatus) (err error) {
	if !status.Valid() {
		err = models.ErrBadRequest
		return
	}
	err = s.orders.UpdateOrderStatus(ctx, orderId, string(status))
	if err != nil {
		return
	}
	s.mu.Lock()
	for i := range s.orderList {
		if s.orderList[i].Id == orderId {
			s.orderList[i].Status = status
		}
	}
	s.mu.Unlock()
	return
}

// nextOrderIDLocked derives the id from the clock in milliseconds, bumping
// past the last issued value so ids stay unique within one process.
func (s *Store) nextOrderIDLocked() string {
	ms := s.now().UnixMilli()
	if ms <= s.lastOrderMillis {
		ms = s.lastOrderMillis + 1
	}
	s.lastOrderMillis = ms
	return "ORD-" + strconv.FormatInt(ms, 10)
}
