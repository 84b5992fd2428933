package services

import (
	"sort"
	"strings"

	"beautyStore/entities"
)

const (
	DefaultFeaturedLimit = 8
	featuredMinRating    = 4.7
)

// Catalog returns the in-stock products matching q in the requested order.
// Ties keep product collection order.
func (s *Store) Catalog(q entities.CatalogQuery) []entities.Product {
	s.mu.RLock()
	brandName := ""
	for _, b := range s.brandList {
		if b.Slug == q.Brand {
			brandName = b.Name
			break
		}
	}
	out := []entities.Product{}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range s.productList {
		if !p.InStock {
			continue
		}
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			continue
		}
		if q.Brand != "" && q.Brand != "all" && p.Brand != q.Brand && (brandName == "" || p.Brand != brandName) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	switch q.Sort {
	case entities.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case entities.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case entities.SortNew:
		sort.SliceStable(out, func(i, j int) bool { return isNew(out[i]) && !isNew(out[j]) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return rating(out[i]) > rating(out[j]) })
	}
	return out
}

// Featured returns up to limit in-stock products that are hits or rated
// at least 4.7. A limit <= 0 uses DefaultFeaturedLimit.
func (s *Store) Featured(limit int) []entities.Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entities.Product{}
	for _, p := range s.productList {
		if len(out) == limit {
			break
		}
		if !p.InStock {
			continue
		}
		if (p.Badge != nil && *p.Badge == entities.BadgeHit) || rating(p) >= featuredMinRating {
			out = append(out, p)
		}
	}
	return out
}

// CategoryCounts counts in-stock products per category slug.
func (s *Store) CategoryCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, p := range s.productList {
		if p.InStock {
			counts[p.Category]++
		}
	}
	return counts
}

// BrandCounts counts in-stock products per brand slug. A product belongs to
// a brand when its brand value is the slug or the display name.
func (s *Store) BrandCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(s.brandList))
	for _, b := range s.brandList {
		n := 0
		for _, p := range s.productList {
			if p.InStock && (p.Brand == b.Slug || p.Brand == b.Name) {
				n++
			}
		}
		counts[b.Slug] = n
	}
	return counts
}

func matchesSearch(p entities.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Brand), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func isNew(p entities.Product) bool {
	return p.Badge != nil && *p.Badge == entities.BadgeNew
}

func rating(p entities.Product) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
