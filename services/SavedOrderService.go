package services

import (
	"context"

	"beautyStore/entities"

	"go.uber.org/zap"
)

// LoadSavedData reloads the order history and last customer from the local
// store. Missing or corrupt values load as empty.
func (s *Store) LoadSavedData(ctx context.Context) {
	s.localMu.Lock()
	orders := s.saved.SavedOrders(ctx)
	customer := s.saved.SavedCustomer(ctx)
	s.localMu.Unlock()

	s.mu.Lock()
	s.savedOrders = orders
	s.savedCustomer = customer
	s.mu.Unlock()
}

func (s *Store) SavedOrders() []entities.SavedOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.SavedOrder{}, s.savedOrders...)
}

// SavedCustomer returns nil when no checkout has happened on this device.
func (s *Store) SavedCustomer() *entities.SavedCustomer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.savedCustomer == nil {
		return nil
	}
	c := *s.savedCustomer
	return &c
}

// RestoreCartFromSavedOrder replaces the cart with the items of the saved
// order. It reports false, leaving the cart alone, when no such order exists.
func (s *Store) RestoreCartFromSavedOrder(orderId string) bool {
	s.mu.Lock()
	found := false
	for _, o := range s.savedOrders {
		if o.Id == orderId {
			s.cart = cloneCart(o.Items)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return false
	}
	s.persist()
	return true
}

func (s *Store) DeleteSavedOrder(ctx context.Context, orderId string) {
	s.localMu.Lock()
	stored := s.saved.SavedOrders(ctx)
	kept := make([]entities.SavedOrder, 0, len(stored))
	for _, o := range stored {
		if o.Id != orderId {
			kept = append(kept, o)
		}
	}
	if err := s.saved.SaveSavedOrders(ctx, kept); err != nil {
		s.log.Warn("DeleteSavedOrder", zap.String("orderId", orderId), zap.Error(err))
	}
	s.localMu.Unlock()

	s.mu.Lock()
	s.savedOrders = kept
	s.mu.Unlock()
}
