package repository

import (
	"database/sql"
	"testing"
	"time"

	"beautyStore/entities"
	"beautyStore/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFromRowDefaults(t *testing.T) {
	p := ProductFromRow(models.Product_db{
		Id:      3,
		Name:    "Cleanser",
		Price:   decimal.NewFromInt(4000),
		InStock: true,
	})

	assert.Equal(t, "", p.Image)
	assert.Equal(t, []string{}, p.Images)
	assert.Nil(t, p.Badge)
	assert.Nil(t, p.OldPrice)
	assert.Nil(t, p.StockQuantity)
	assert.Nil(t, p.Rating)
	assert.Nil(t, p.ReviewCount)
	assert.Nil(t, p.FullDescription)
	assert.Equal(t, "", p.Description)
}

func TestProductFromRowOptionals(t *testing.T) {
	p := ProductFromRow(models.Product_db{
		Id:            1,
		Price:         decimal.NewFromInt(900),
		OldPrice:      decimal.NullDecimal{Decimal: decimal.NewFromInt(1200), Valid: true},
		Image:         sql.NullString{String: "a.jpg", Valid: true},
		Images:        pq.StringArray{"a.jpg", "b.jpg"},
		Badge:         sql.NullString{String: "sale", Valid: true},
		StockQuantity: sql.NullInt64{Int64: 7, Valid: true},
		HowToUse:      sql.NullString{String: "apply", Valid: true},
		Rating:        sql.NullFloat64{Float64: 4.7, Valid: true},
		ReviewCount:   sql.NullInt64{Int64: 31, Valid: true},
	})

	assert.Equal(t, "a.jpg", p.Image)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
	require.NotNil(t, p.Badge)
	assert.Equal(t, entities.BadgeSale, *p.Badge)
	require.NotNil(t, p.OldPrice)
	assert.True(t, p.OldPrice.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 7, *p.StockQuantity)
	assert.Equal(t, "apply", *p.HowToUse)
	assert.Equal(t, 4.7, *p.Rating)
	assert.Equal(t, 31, *p.ReviewCount)
}

func TestProductToRowOmitsUnsetFields(t *testing.T) {
	name := "Toner"
	row := ProductToRow(entities.ProductPatch{
		Name:     &name,
		Badge:    models.Nullable[entities.Badge]{Set: true},
		Rating:   models.NullableOf(4.5),
		OldPrice: models.Nullable[decimal.Decimal]{},
	})

	assert.Equal(t, []string{"name", "badge", "rating"}, row.Columns)
	assert.Equal(t, []any{"Toner", nil, 4.5}, row.Values)
}

func TestProductToRowImages(t *testing.T) {
	var empty []string
	row := ProductToRow(entities.ProductPatch{Images: &empty})
	v, ok := row.Value("images")
	require.True(t, ok)
	assert.Equal(t, pq.StringArray{}, v)
}

func TestCategoryAndBrandRows(t *testing.T) {
	c := CategoryFromRow(models.Category_db{Id: 2, Slug: "hair", Name: "Hair", SortOrder: 5})
	assert.Equal(t, entities.Category{Id: 2, Slug: "hair", Name: "Hair", SortOrder: 5}, c)

	order := 1
	row := CategoryToRow(entities.CategoryPatch{SortOrder: &order})
	assert.Equal(t, []string{"sort_order"}, row.Columns)

	b := BrandFromRow(models.Brand_db{Id: 1, Slug: "cosrx", Name: "COSRX"})
	assert.Nil(t, b.Logo)

	brow := BrandToRow(entities.BrandPatch{Logo: models.Nullable[string]{Set: true}})
	v, ok := brow.Value("logo")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestOrderFromRow(t *testing.T) {
	created := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	row := models.Order_db{
		Id:            "ORD-1",
		CustomerName:  "Dana",
		CustomerPhone: "87004170411",
		ReserveFor24h: sql.NullBool{Bool: true, Valid: true},
		Total:         decimal.NewFromInt(2500),
		Status:        "contacted",
		CreatedAt:     created,
	}
	items := []models.OrderItem_db{
		{Id: 1, OrderId: "ORD-1", ProductId: 10, ProductName: "Essence", ProductPrice: decimal.NewFromInt(1000), Quantity: 2},
		{Id: 2, OrderId: "ORD-2", ProductId: 11, ProductName: "Other", ProductPrice: decimal.NewFromInt(1), Quantity: 1},
		{Id: 3, OrderId: "ORD-1", ProductId: 12, ProductName: "Deleted", ProductPrice: decimal.NewFromInt(500), Quantity: 1},
	}
	refs := map[int64]models.ProductRef_db{
		10: {Id: 10, Image: sql.NullString{String: "e.jpg", Valid: true}, Brand: sql.NullString{String: "COSRX", Valid: true}},
	}

	o := OrderFromRow(row, items, refs)
	assert.Equal(t, entities.OrderContacted, o.Status)
	assert.Equal(t, "", o.Customer.Comment)
	require.NotNil(t, o.Customer.ReserveFor24h)
	assert.True(t, *o.Customer.ReserveFor24h)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "e.jpg", o.Items[0].Product.Image)
	assert.Equal(t, "COSRX", o.Items[0].Product.Brand)
	assert.Equal(t, "Deleted", o.Items[1].Product.Name)
	assert.Equal(t, "", o.Items[1].Product.Image)
	assert.True(t, o.Items[1].Product.Price.Equal(decimal.NewFromInt(500)))
}

func TestOrderToRows(t *testing.T) {
	order := entities.Order{
		Id:       "ORD-9",
		Customer: entities.OrderFormData{Name: "Dana", Phone: "1", Comment: "hi"},
		Items: []entities.CartItem{
			{Product: entities.Product{Id: 1, Name: "A", Price: decimal.NewFromInt(10)}, Quantity: 3},
		},
		Total:  decimal.NewFromInt(30),
		Status: entities.OrderPending,
	}
	row := OrderToRow(order)
	assert.Equal(t, sql.NullString{String: "hi", Valid: true}, row.CustomerComment)
	assert.False(t, row.ReserveFor24h.Valid)
	assert.Equal(t, "pending", row.Status)

	items := OrderItemsToRows(order)
	require.Len(t, items, 1)
	assert.Equal(t, "ORD-9", items[0].OrderId)
	assert.Equal(t, 3, items[0].Quantity)
}
