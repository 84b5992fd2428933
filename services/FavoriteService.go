package services

import "beautyStore/entities"

func (s *Store) ToggleFavorite(productId int64) {
	s.mu.Lock()
	if containsID(s.favorites, productId) {
		kept := make([]int64, 0, len(s.favorites))
		for _, id := range s.favorites {
			if id != productId {
				kept = append(kept, id)
			}
		}
		s.favorites = kept
	} else {
		s.favorites = append(s.favorites, productId)
	}
	s.mu.Unlock()
	s.persist()
}

func (s *Store) IsFavorite(productId int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsID(s.favorites, productId)
}

func (s *Store) FavoritesCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

// FavoriteProducts returns the loaded products that are favorites, in
// product collection order. Ids with no loaded product are skipped.
func (s *Store) FavoriteProducts() []entities.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entities.Product{}
	for _, p := range s.productList {
		if containsID(s.favorites, p.Id) {
			out = append(out, p)
		}
	}
	return out
}
