package services

import (
	"context"

	"beautyStore/entities"
	"beautyStore/repository"

	"go.uber.org/zap"
)

func (s *Store) FetchCategories(ctx context.Context) {
	s.mu.Lock()
	s.categoriesLoading = true
	s.mu.Unlock()

	rows, err := s.categories.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoriesLoading = false
	if err != nil {
		s.log.Error("FetchCategories", zap.Error(err))
		return
	}
	list := make([]entities.Category, 0, len(rows))
	for _, r := range rows {
		list = append(list, repository.CategoryFromRow(r))
	}
	s.categoryList = list
}

func (s *Store) CategoriesLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoriesLoading
}

func (s *Store) Categories() []entities.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Category{}, s.categoryList...)
}

// AddCategory appends the created category; the list is not re-sorted
// until the next fetch.
func (s *Store) AddCategory(ctx context.Context, c entities.Category) (created entities.Category, err error) {
	patch := entities.CategoryPatch{Slug: &c.Slug, Name: &c.Name, SortOrder: &c.SortOrder}
	row, err := s.categories.CreateCategory(ctx, repository.CategoryToRow(patch))
	if err != nil {
		return
	}
	created = repository.CategoryFromRow(row)

	s.mu.Lock()
	s.categoryList = append(s.categoryList, created)
	s.mu.Unlock()
	return
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, patch entities.CategoryPatch) (err error) {
	err = s.categories.UpdateCategory(ctx, id, repository.CategoryToRow(patch))
	if err != nil {
		return
	}
	s.mu.Lock()
	for i := range s.categoryList {
		if s.categoryList[i].Id == id {
			s.categoryList[i] = patch.Apply(s.categoryList[i])
		}
	}
	s.mu.Unlock()
	return
}

// DeleteCategory does not touch products that still name the category.
func (s *Store) DeleteCategory(ctx context.Context, id int64) (err error) {
	err = s.categories.DeleteCategory(ctx, id)
	if err != nil {
		return
	}
	s.mu.Lock()
	kept := make([]entities.Category, 0, len(s.categoryList))
	for _, c := range s.categoryList {
		if c.Id != id {
			kept = append(kept, c)
		}
	}
	s.categoryList = kept
	s.mu.Unlock()
	return
}
