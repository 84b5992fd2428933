package repository

import (
	"database/sql"

	"beautyStore/entities"
	"beautyStore/models"

	"github.com/lib/pq"
)

// Row <-> entity mapping. These functions never validate: whatever the
// backend returns is passed through with default substitution only.

func ProductFromRow(row models.Product_db) entities.Product {
	p := entities.Product{
		Id:          row.Id,
		Name:        row.Name,
		Category:    row.Category,
		Brand:       row.Brand,
		Price:       row.Price,
		Image:       row.Image.String,
		Images:      []string{},
		InStock:     row.InStock,
		Description: row.Description.String,
	}
	if row.Images != nil {
		p.Images = append(p.Images, row.Images...)
	}
	if row.OldPrice.Valid {
		v := row.OldPrice.Decimal
		p.OldPrice = &v
	}
	if row.Badge.Valid {
		b := entities.Badge(row.Badge.String)
		p.Badge = &b
	}
	p.StockQuantity = intPtr(row.StockQuantity)
	p.FullDescription = stringPtr(row.FullDescription)
	p.Ingredients = stringPtr(row.Ingredients)
	p.HowToUse = stringPtr(row.HowToUse)
	if row.Rating.Valid {
		v := row.Rating.Float64
		p.Rating = &v
	}
	p.ReviewCount = intPtr(row.ReviewCount)
	return p
}

// ProductToRow converts a partial product into a row patch. Only fields
// present in the patch appear; cleared optional fields become NULL.
func ProductToRow(pp entities.ProductPatch) models.RowPatch {
	var row models.RowPatch
	if pp.Name != nil {
		row.Set("name", *pp.Name)
	}
	if pp.Category != nil {
		row.Set("category", *pp.Category)
	}
	if pp.Brand != nil {
		row.Set("brand", *pp.Brand)
	}
	if pp.Price != nil {
		row.Set("price", *pp.Price)
	}
	if pp.OldPrice.Set {
		row.Set("old_price", nullValue(pp.OldPrice.Value))
	}
	if pp.Image != nil {
		row.Set("image", *pp.Image)
	}
	if pp.Images != nil {
		images := *pp.Images
		if images == nil {
			images = []string{}
		}
		row.Set("images", pq.StringArray(images))
	}
	if pp.Badge.Set {
		if pp.Badge.Value == nil {
			row.Set("badge", nil)
		} else {
			row.Set("badge", string(*pp.Badge.Value))
		}
	}
	if pp.InStock != nil {
		row.Set("in_stock", *pp.InStock)
	}
	if pp.StockQuantity.Set {
		row.Set("stock_quantity", nullValue(pp.StockQuantity.Value))
	}
	if pp.Description != nil {
		row.Set("description", *pp.Description)
	}
	if pp.FullDescription.Set {
		row.Set("full_description", nullValue(pp.FullDescription.Value))
	}
	if pp.Ingredients.Set {
		row.Set("ingredients", nullValue(pp.Ingredients.Value))
	}
	if pp.HowToUse.Set {
		row.Set("how_to_use", nullValue(pp.HowToUse.Value))
	}
	if pp.Rating.Set {
		row.Set("rating", nullValue(pp.Rating.Value))
	}
	if pp.ReviewCount.Set {
		row.Set("review_count", nullValue(pp.ReviewCount.Value))
	}
	return row
}

func CategoryFromRow(row models.Category_db) entities.Category {
	return entities.Category{
		Id:        row.Id,
		Slug:      row.Slug,
		Name:      row.Name,
		SortOrder: row.SortOrder,
	}
}

func CategoryToRow(cp entities.CategoryPatch) models.RowPatch {
	var row models.RowPatch
	if cp.Slug != nil {
		row.Set("slug", *cp.Slug)
	}
	if cp.Name != nil {
		row.Set("name", *cp.Name)
	}
	if cp.SortOrder != nil {
		row.Set("sort_order", *cp.SortOrder)
	}
	return row
}

func BrandFromRow(row models.Brand_db) entities.Brand {
	return entities.Brand{
		Id:        row.Id,
		Slug:      row.Slug,
		Name:      row.Name,
		Logo:      stringPtr(row.Logo),
		SortOrder: row.SortOrder,
	}
}

func BrandToRow(bp entities.BrandPatch) models.RowPatch {
	var row models.RowPatch
	if bp.Slug != nil {
		row.Set("slug", *bp.Slug)
	}
	if bp.Name != nil {
		row.Set("name", *bp.Name)
	}
	if bp.Logo.Set {
		row.Set("logo", nullValue(bp.Logo.Value))
	}
	if bp.SortOrder != nil {
		row.Set("sort_order", *bp.SortOrder)
	}
	return row
}

// OrderFromRow rebuilds an order from its header, its line items and the
// current product projection. Line items keep the name and price captured
// at checkout; media and taxonomy come from the product if it still exists.
func OrderFromRow(row models.Order_db, items []models.OrderItem_db, products map[int64]models.ProductRef_db) entities.Order {
	order := entities.Order{
		Id:    row.Id,
		Items: []entities.CartItem{},
		Total: row.Total,
		Customer: entities.OrderFormData{
			Name:    row.CustomerName,
			Phone:   row.CustomerPhone,
			Comment: row.CustomerComment.String,
		},
		CreatedAt: row.CreatedAt,
		Status:    entities.OrderStatus(row.Status),
	}
	if row.ReserveFor24h.Valid {
		v := row.ReserveFor24h.Bool
		order.Customer.ReserveFor24h = &v
	}
	for _, it := range items {
		if it.OrderId != row.Id {
			continue
		}
		ref := products[it.ProductId]
		order.Items = append(order.Items, entities.CartItem{
			Product: entities.Product{
				Id:       it.ProductId,
				Name:     it.ProductName,
				Price:    it.ProductPrice,
				Category: ref.Category.String,
				Brand:    ref.Brand.String,
				Image:    ref.Image.String,
				Images:   []string{},
				InStock:  true,
			},
			Quantity: it.Quantity,
		})
	}
	return order
}

func OrderToRow(o entities.Order) models.Order_db {
	row := models.Order_db{
		Id:            o.Id,
		CustomerName:  o.Customer.Name,
		CustomerPhone: o.Customer.Phone,
		Total:         o.Total,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
	if o.Customer.Comment != "" {
		row.CustomerComment = sql.NullString{String: o.Customer.Comment, Valid: true}
	}
	if o.Customer.ReserveFor24h != nil {
		row.ReserveFor24h = sql.NullBool{Bool: *o.Customer.ReserveFor24h, Valid: true}
	}
	return row
}

func OrderItemsToRows(o entities.Order) []models.OrderItem_db {
	rows := make([]models.OrderItem_db, 0, len(o.Items))
	for _, it := range o.Items {
		rows = append(rows, models.OrderItem_db{
			OrderId:      o.Id,
			ProductId:    it.Product.Id,
			ProductName:  it.Product.Name,
			ProductPrice: it.Product.Price,
			Quantity:     it.Quantity,
		})
	}
	return rows
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func nullValue[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
