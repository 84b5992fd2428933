package services

import (
	"context"

	"beautyStore/entities"
	"beautyStore/models"
	"beautyStore/repository"

	"go.uber.org/zap"
)

func (s *Store) FetchBrands(ctx context.Context) {
	s.mu.Lock()
	s.brandsLoading = true
	s.mu.Unlock()

	rows, err := s.brands.ListBrands(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.brandsLoading = false
	if err != nil {
		s.log.Error("FetchBrands", zap.Error(err))
		return
	}
	list := make([]entities.Brand, 0, len(rows))
	for _, r := range rows {
		list = append(list, repository.BrandFromRow(r))
	}
	s.brandList = list
}

func (s *Store) BrandsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brandsLoading
}

func (s *Store) Brands() []entities.Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Brand{}, s.brandList...)
}

func (s *Store) AddBrand(ctx context.Context, b entities.Brand) (created entities.Brand, err error) {
	patch := entities.BrandPatch{
		Slug:      &b.Slug,
		Name:      &b.Name,
		Logo:      models.NullableFrom(b.Logo),
		SortOrder: &b.SortOrder,
	}
	row, err := s.brands.CreateBrand(ctx, repository.BrandToRow(patch))
	if err != nil {
		return
	}
	created = repository.BrandFromRow(row)

	s.mu.Lock()
	s.brandList = append(s.brandList, created)
	s.mu.Unlock()
	return
}

func (s *Store) UpdateBrand(ctx context.Context, id int64, patch entities.BrandPatch) (err error) {
	err = s.brands.UpdateBrand(ctx, id, repository.BrandToRow(patch))
	if err != nil {
		return
	}
	s.mu.Lock()
	for i := range s.brandList {
		if s.brandList[i].Id == id {
			s.brandList[i] = patch.Apply(s.brandList[i])
		}
	}
	s.mu.Unlock()
	return
}

func (s *Store) DeleteBrand(ctx context.Context, id int64) (err error) {
	err = s.brands.DeleteBrand(ctx, id)
	if err != nil {
		return
	}
	s.mu.Lock()
	kept := make([]entities.Brand, 0, len(s.brandList))
	for _, b := range s.brandList {
		if b.Id != id {
			kept = append(kept, b)
		}
	}
	s.brandList = kept
	s.mu.Unlock()
	return
}
