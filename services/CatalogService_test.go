package services

import (
	"context"
	"testing"

	"beautyStore/entities"
	"beautyStore/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func catalogEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	row := func(id int64, name, category, brand string, price int64, badge string, rating float64, inStock bool) models.Product_db {
		r := models.Product_db{
			Id:       id,
			Name:     name,
			Category: category,
			Brand:    brand,
			Price:    decimal.NewFromInt(price),
			InStock:  inStock,
		}
		if badge != "" {
			r.Badge.String, r.Badge.Valid = badge, true
		}
		if rating > 0 {
			r.Rating.Float64, r.Rating.Valid = rating, true
		}
		return r
	}
	env.products.rows = []models.Product_db{
		row(1, "Snail Mucin Essence", "face", "COSRX", 9000, "hit", 4.5, true),
		row(2, "Relief Sun SPF50", "face", "Beauty of Joseon", 7500, "new", 4.9, true),
		row(3, "Hair Oil", "hair", "Lador", 6000, "", 4.2, true),
		row(4, "Lip Sleeping Mask", "lips", "Laneige", 8000, "sale", 4.8, false),
		row(5, "Green Tea Cleanser", "face", "Innisfree", 4000, "new", 0, true),
	}
	env.brands.rows = []models.Brand_db{
		{Id: 1, Slug: "cosrx", Name: "COSRX"},
		{Id: 2, Slug: "beauty-of-joseon", Name: "Beauty of Joseon"},
	}
	env.store.FetchProducts(context.Background())
	env.store.FetchBrands(context.Background())
	return env
}

func ids(ps []entities.Product) []int64 {
	out := []int64{}
	for _, p := range ps {
		out = append(out, p.Id)
	}
	return out
}

func TestCatalog(t *testing.T) {
	env := catalogEnv(t)

	tests := []struct {
		name  string
		query entities.CatalogQuery
		want  []int64
	}{
		{"default sort is rating", entities.CatalogQuery{}, []int64{2, 1, 3, 5}},
		{"all category", entities.CatalogQuery{Category: "all"}, []int64{2, 1, 3, 5}},
		{"category", entities.CatalogQuery{Category: "face"}, []int64{2, 1, 5}},
		{"brand by slug", entities.CatalogQuery{Brand: "beauty-of-joseon"}, []int64{2}},
		{"brand by name", entities.CatalogQuery{Brand: "COSRX"}, []int64{1}},
		{"search is case insensitive", entities.CatalogQuery{Search: "  SUN "}, []int64{2}},
		{"search matches brand", entities.CatalogQuery{Search: "lador"}, []int64{3}},
		{"price asc", entities.CatalogQuery{Sort: entities.SortPriceAsc}, []int64{5, 3, 2, 1}},
		{"price desc", entities.CatalogQuery{Sort: entities.SortPriceDesc}, []int64{1, 2, 3, 5}},
		{"new first keeps order", entities.CatalogQuery{Sort: entities.SortNew}, []int64{2, 5, 1, 3}},
		{"no match", entities.CatalogQuery{Category: "body"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(env.store.Catalog(tt.query)))
		})
	}
}

func TestFeatured(t *testing.T) {
	env := catalogEnv(t)
	assert.Equal(t, []int64{1, 2}, ids(env.store.Featured(0)))
	assert.Equal(t, []int64{1}, ids(env.store.Featured(1)))
}

func TestCounts(t *testing.T) {
	env := catalogEnv(t)
	assert.Equal(t, map[string]int{"face": 3, "hair": 1}, env.store.CategoryCounts())
	assert.Equal(t, map[string]int{"cosrx": 1, "beauty-of-joseon": 1}, env.store.BrandCounts())

	// products may carry either the slug or the display name
	env.products.rows = append(env.products.rows, models.Product_db{Id: 6, Name: "Toner", Brand: "cosrx", Price: decimal.NewFromInt(1), InStock: true})
	env.store.FetchProducts(context.Background())
	assert.Equal(t, 2, env.store.BrandCounts()["cosrx"])
	assert.NotContains(t, env.store.BrandCounts(), "COSRX")
}
