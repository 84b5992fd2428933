package models

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnauthorized = errors.New("unauthorized")
var ErrServerError = errors.New("server error")
var ErrNotFound = errors.New("not found")
var ErrRemoteRead = errors.New("remote read failed")
var ErrRemoteWrite = errors.New("remote write failed")

// ErrProductInUse is returned when a product cannot be deleted because
// order line items still reference it.
var ErrProductInUse = errors.New("product is referenced by existing orders")

// Product_db mirrors a row of the products table.
type Product_db struct {
	Id              int64
	Name            string
	Category        string
	Brand           string
	Price           decimal.Decimal
	OldPrice        decimal.NullDecimal
	Image           sql.NullString
	Images          pq.StringArray
	Badge           sql.NullString
	InStock         bool
	StockQuantity   sql.NullInt64
	Description     sql.NullString
	FullDescription sql.NullString
	Ingredients     sql.NullString
	HowToUse        sql.NullString
	Rating          sql.NullFloat64
	ReviewCount     sql.NullInt64
	CreatedAt       time.Time
}

type Category_db struct {
	Id        int64
	Slug      string
	Name      string
	SortOrder int
	CreatedAt time.Time
}

type Brand_db struct {
	Id        int64
	Slug      string
	Name      string
	Logo      sql.NullString
	SortOrder int
	CreatedAt time.Time
}

type Order_db struct {
	Id              string
	CustomerName    string
	CustomerPhone   string
	CustomerComment sql.NullString
	ReserveFor24h   sql.NullBool
	Total           decimal.Decimal
	Status          string
	CreatedAt       time.Time
}

type OrderItem_db struct {
	Id           int64
	OrderId      string
	ProductId    int64
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int
}

// ProductRef_db is the reduced product projection used to decorate order
// line items with media and taxonomy.
type ProductRef_db struct {
	Id       int64
	Image    sql.NullString
	Brand    sql.NullString
	Category sql.NullString
}

// OrderSet is everything needed to rebuild the orders collection.
type OrderSet struct {
	Orders   []Order_db
	Items    []OrderItem_db
	Products []ProductRef_db
}

// RowPatch is an ordered set of column assignments. Columns that were not
// set are absent, so an UPDATE built from it leaves them untouched.
type RowPatch struct {
	Columns []string
	Values  []any
}

func (p *RowPatch) Set(column string, value any) {
	for i, c := range p.Columns {
		if c == column {
			p.Values[i] = value
			return
		}
	}
	p.Columns = append(p.Columns, column)
	p.Values = append(p.Values, value)
}

func (p RowPatch) Len() int {
	return len(p.Columns)
}

// Value returns the assignment for column and whether it is present.
func (p RowPatch) Value(column string) (any, bool) {
	for i, c := range p.Columns {
		if c == column {
			return p.Values[i], true
		}
	}
	return nil, false
}

// Nullable is a JSON field that distinguishes "absent" from "null".
// Set reports whether the key was present; Value is nil for an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// NullableFrom turns an optional value into a set field, clearing the
// column when v is nil.
func NullableFrom[T any](v *T) Nullable[T] {
	if v == nil {
		return Nullable[T]{Set: true}
	}
	c := *v
	return Nullable[T]{Set: true, Value: &c}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
