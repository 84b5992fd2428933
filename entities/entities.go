package entities

import (
	"time"

	"beautyStore/models"

	"github.com/shopspring/decimal"
)

type Badge string

const (
	BadgeHit  Badge = "hit"
	BadgeNew  Badge = "new"
	BadgeSale Badge = "sale"
)

type Product struct {
	Id              int64            `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Brand           string           `json:"brand"`
	Price           decimal.Decimal  `json:"price"`
	OldPrice        *decimal.Decimal `json:"oldPrice,omitempty"`
	Image           string           `json:"image"`
	Images          []string         `json:"images"`
	Badge           *Badge           `json:"badge,omitempty"`
	InStock         bool             `json:"inStock"`
	StockQuantity   *int             `json:"stockQuantity,omitempty"`
	Description     string           `json:"description"`
	FullDescription *string          `json:"fullDescription,omitempty"`
	Ingredients     *string          `json:"ingredients,omitempty"`
	HowToUse        *string          `json:"howToUse,omitempty"`
	Rating          *float64         `json:"rating,omitempty"`
	ReviewCount     *int             `json:"reviewCount,omitempty"`
}

// ProductPatch is a partial product. Nil pointers and unset Nullable
// fields are left untouched; a set Nullable with a nil Value clears the field.
type ProductPatch struct {
	Name            *string                          `json:"name,omitempty"`
	Category        *string                          `json:"category,omitempty"`
	Brand           *string                          `json:"brand,omitempty"`
	Price           *decimal.Decimal                 `json:"price,omitempty"`
	OldPrice        models.Nullable[decimal.Decimal] `json:"oldPrice"`
	Image           *string                          `json:"image,omitempty"`
	Images          *[]string                        `json:"images,omitempty"`
	Badge           models.Nullable[Badge]           `json:"badge"`
	InStock         *bool                            `json:"inStock,omitempty"`
	StockQuantity   models.Nullable[int]             `json:"stockQuantity"`
	Description     *string                          `json:"description,omitempty"`
	FullDescription models.Nullable[string]          `json:"fullDescription"`
	Ingredients     models.Nullable[string]          `json:"ingredients"`
	HowToUse        models.Nullable[string]          `json:"howToUse"`
	Rating          models.Nullable[float64]         `json:"rating"`
	ReviewCount     models.Nullable[int]             `json:"reviewCount"`
}

// PatchFromProduct builds a patch that sets every field of p.
func PatchFromProduct(p Product) ProductPatch {
	images := append([]string{}, p.Images...)
	return ProductPatch{
		Name:            &p.Name,
		Category:        &p.Category,
		Brand:           &p.Brand,
		Price:           &p.Price,
		OldPrice:        models.NullableFrom(p.OldPrice),
		Image:           &p.Image,
		Images:          &images,
		Badge:           models.NullableFrom(p.Badge),
		InStock:         &p.InStock,
		StockQuantity:   models.NullableFrom(p.StockQuantity),
		Description:     &p.Description,
		FullDescription: models.NullableFrom(p.FullDescription),
		Ingredients:     models.NullableFrom(p.Ingredients),
		HowToUse:        models.NullableFrom(p.HowToUse),
		Rating:          models.NullableFrom(p.Rating),
		ReviewCount:     models.NullableFrom(p.ReviewCount),
	}
}

// Apply merges the patch into p and returns the result.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Brand != nil {
		p.Brand = *pp.Brand
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.OldPrice.Set {
		p.OldPrice = pp.OldPrice.Value
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Images != nil {
		p.Images = append([]string{}, (*pp.Images)...)
	}
	if pp.Badge.Set {
		p.Badge = pp.Badge.Value
	}
	if pp.InStock != nil {
		p.InStock = *pp.InStock
	}
	if pp.StockQuantity.Set {
		p.StockQuantity = pp.StockQuantity.Value
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.FullDescription.Set {
		p.FullDescription = pp.FullDescription.Value
	}
	if pp.Ingredients.Set {
		p.Ingredients = pp.Ingredients.Value
	}
	if pp.HowToUse.Set {
		p.HowToUse = pp.HowToUse.Value
	}
	if pp.Rating.Set {
		p.Rating = pp.Rating.Value
	}
	if pp.ReviewCount.Set {
		p.ReviewCount = pp.ReviewCount.Value
	}
	return p
}

type Category struct {
	Id        int64  `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

type CategoryPatch struct {
	Slug      *string `json:"slug,omitempty"`
	Name      *string `json:"name,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

func (cp CategoryPatch) Apply(c Category) Category {
	if cp.Slug != nil {
		c.Slug = *cp.Slug
	}
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.SortOrder != nil {
		c.SortOrder = *cp.SortOrder
	}
	return c
}

type Brand struct {
	Id        int64   `json:"id"`
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Logo      *string `json:"logo,omitempty"`
	SortOrder int     `json:"sortOrder"`
}

type BrandPatch struct {
	Slug      *string                 `json:"slug,omitempty"`
	Name      *string                 `json:"name,omitempty"`
	Logo      models.Nullable[string] `json:"logo"`
	SortOrder *int                    `json:"sortOrder,omitempty"`
}

func (bp BrandPatch) Apply(b Brand) Brand {
	if bp.Slug != nil {
		b.Slug = *bp.Slug
	}
	if bp.Name != nil {
		b.Name = *bp.Name
	}
	if bp.Logo.Set {
		b.Logo = bp.Logo.Value
	}
	if bp.SortOrder != nil {
		b.SortOrder = *bp.SortOrder
	}
	return b
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

type OrderFormData struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Comment       string `json:"comment"`
	ReserveFor24h *bool  `json:"reserveFor24h,omitempty"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderContacted OrderStatus = "contacted"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses. Any known status
// may follow any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderContacted, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	Id        string          `json:"id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Customer  OrderFormData   `json:"customer"`
	CreatedAt time.Time       `json:"createdAt"`
	Status    OrderStatus     `json:"status"`
}

type SavedCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SavedOrder is the device-local copy of an order taken at checkout. It is
// never updated from the remote order afterwards.
type SavedOrder struct {
	Id        string          `json:"id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Customer  SavedCustomer   `json:"customer"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Snapshot is the part of the store state that survives a reload.
type Snapshot struct {
	Cart                 []CartItem `json:"cart"`
	Favorites            []int64    `json:"favorites"`
	IsAdminAuthenticated bool       `json:"isAdminAuthenticated"`
}

type SortOption string

const (
	SortPopular   SortOption = "popular"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNew       SortOption = "new"
)

// CatalogQuery selects and orders the visible catalog. Empty or "all"
// Category and Brand match everything.
type CatalogQuery struct {
	Category string     `json:"category"`
	Brand    string     `json:"brand"`
	Search   string     `json:"search"`
	Sort     SortOption `json:"sort"`
}
