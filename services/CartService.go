package services

import (
	"beautyStore/entities"
	"beautyStore/notifier"

	"github.com/shopspring/decimal"
)

// AddToCart adds qty of product, merging with an existing line for the same
// product id. A qty below 1 counts as 1.
func (s *Store) AddToCart(product entities.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	merged := false
	for i := range s.cart {
		if s.cart[i].Product.Id == product.Id {
			s.cart[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, entities.CartItem{Product: product, Quantity: qty})
	}
	s.mu.Unlock()
	s.persist()
}

// UpdateQuantity sets the quantity of a line; qty <= 0 removes it.
func (s *Store) UpdateQuantity(productId int64, qty int) {
	if qty <= 0 {
		s.RemoveFromCart(productId)
		return
	}
	s.mu.Lock()
	for i := range s.cart {
		if s.cart[i].Product.Id == productId {
			s.cart[i].Quantity = qty
		}
	}
	s.mu.Unlock()
	s.persist()
}

func (s *Store) RemoveFromCart(productId int64) {
	s.mu.Lock()
	kept := make([]entities.CartItem, 0, len(s.cart))
	for _, it := range s.cart {
		if it.Product.Id != productId {
			kept = append(kept, it)
		}
	}
	s.cart = kept
	s.mu.Unlock()
	s.persist()
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = []entities.CartItem{}
	s.mu.Unlock()
	s.persist()
}

func (s *Store) Cart() []entities.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart)
}

// CartTotal is recomputed on every call.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartTotal(s.cart)
}

func (s *Store) CartCount() (count int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.cart {
		count += it.Quantity
	}
	return
}

func cartTotal(items []entities.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// WhatsAppLink returns a wa.me link prefilled with the current cart.
func (s *Store) WhatsAppLink() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return notifier.WhatsAppLink(s.whatsApp, s.cart, cartTotal(s.cart))
}
