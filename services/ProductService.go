package services

import (
	"context"

	"beautyStore/entities"
	"beautyStore/repository"

	"go.uber.org/zap"
)

// FetchProducts replaces the product collection. On failure the previous
// collection is kept and the error is only logged.
func (s *Store) FetchProducts(ctx context.Context) {
	s.mu.Lock()
	s.productsLoading = true
	s.mu.Unlock()

	rows, err := s.products.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.productsLoading = false
	if err != nil {
		s.log.Error("FetchProducts", zap.Error(err))
		return
	}
	list := make([]entities.Product, 0, len(rows))
	for _, r := range rows {
		list = append(list, repository.ProductFromRow(r))
	}
	s.productList = list
}

func (s *Store) ProductsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productsLoading
}

func (s *Store) Products() []entities.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Product{}, s.productList...)
}

func (s *Store) Product(id int64) (p entities.Product, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, prod := range s.productList {
		if prod.Id == id {
			return prod, true
		}
	}
	return
}

// AddProduct creates p remotely and prepends the stored row. The id of p is
// ignored.
func (s *Store) AddProduct(ctx context.Context, p entities.Product) (created entities.Product, err error) {
	row, err := s.products.CreateProduct(ctx, repository.ProductToRow(entities.PatchFromProduct(p)))
	if err != nil {
		return
	}
	created = repository.ProductFromRow(row)

	s.mu.Lock()
	s.productList = append([]entities.Product{created}, s.productList...)
	s.mu.Unlock()
	return
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch entities.ProductPatch) (err error) {
	err = s.products.UpdateProduct(ctx, id, repository.ProductToRow(patch))
	if err != nil {
		return
	}
	s.mu.Lock()
	for i := range s.productList {
		if s.productList[i].Id == id {
			s.productList[i] = patch.Apply(s.productList[i])
		}
	}
	s.mu.Unlock()
	return
}

// DeleteProduct returns models.ErrProductInUse when order line items still
// reference the product.
func (s *Store) DeleteProduct(ctx context.Context, id int64) (err error) {
	err = s.products.DeleteProduct(ctx, id)
	if err != nil {
		return
	}
	s.mu.Lock()
	kept := make([]entities.Product, 0, len(s.productList))
	for _, p := range s.productList {
		if p.Id != id {
			kept = append(kept, p)
		}
	}
	s.productList = kept
	s.mu.Unlock()
	return
}
