package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"beautyStore/models"

	"go.uber.org/zap"
)

type OrderRepository interface {
	ListOrders(ctx context.Context) (set models.OrderSet, err error)
	CreateOrder(ctx context.Context, order models.Order_db) (err error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem_db) (err error)
	UpdateOrderStatus(ctx context.Context, orderId string, status string) (err error)
}

type OrderRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewOrderRepository(conn *sql.DB, log *zap.Logger) (*OrderRepo, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		db:  conn,
		log: orNop(log).Named("orders"),
	}, nil
}

// ListOrders loads order headers newest first, every line item, and the
// product projection used to decorate items. A failure on the product
// projection is logged and yields undecorated items.
func (o *OrderRepo) ListOrders(ctx context.Context) (set models.OrderSet, err error) {
	rows, e := o.db.QueryContext(ctx, "SELECT id, customer_name, customer_phone, customer_comment, reserve_for_24h, total, status, created_at FROM orders ORDER BY created_at DESC")
	if e != nil {
		o.log.Error("ListOrders[1]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
		return
	}
	for rows.Next() {
		var ord models.Order_db
		e = rows.Scan(&ord.Id, &ord.CustomerName, &ord.CustomerPhone, &ord.CustomerComment,
			&ord.ReserveFor24h, &ord.Total, &ord.Status, &ord.CreatedAt)
		if e != nil {
			rows.Close()
			o.log.Error("ListOrders[2]", zap.Error(e))
			err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
			return
		}
		set.Orders = append(set.Orders, ord)
	}
	rows.Close()
	if e = rows.Err(); e != nil {
		o.log.Error("ListOrders[3]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
		return
	}

	set.Items, err = o.listOrderItems(ctx)
	if err != nil {
		return
	}

	refs, e := o.listProductRefs(ctx)
	if e != nil {
		o.log.Warn("ListOrders: product projection unavailable", zap.Error(e))
	}
	set.Products = refs
	return
}

func (o *OrderRepo) listOrderItems(ctx context.Context) (items []models.OrderItem_db, err error) {
	rows, e := o.db.QueryContext(ctx, "SELECT id, order_id, product_id, product_name, product_price, quantity FROM order_items")
	if e != nil {
		o.log.Error("listOrderItems[1]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var it models.OrderItem_db
		e = rows.Scan(&it.Id, &it.OrderId, &it.ProductId, &it.ProductName, &it.ProductPrice, &it.Quantity)
		if e != nil {
			o.log.Error("listOrderItems[2]", zap.Error(e))
			err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
			return
		}
		items = append(items, it)
	}
	if e = rows.Err(); e != nil {
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
	}
	return
}

func (o *OrderRepo) listProductRefs(ctx context.Context) (refs []models.ProductRef_db, err error) {
	rows, err := o.db.QueryContext(ctx, "SELECT id, image, brand, category FROM products")
	if err != nil {
		return
	}
	defer rows.Close()
	for rows.Next() {
		var ref models.ProductRef_db
		if err = rows.Scan(&ref.Id, &ref.Image, &ref.Brand, &ref.Category); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	err = rows.Err()
	return
}

func (o *OrderRepo) CreateOrder(ctx context.Context, order models.Order_db) (err error) {
	_, err = o.db.ExecContext(ctx,
		"INSERT INTO orders (id, customer_name, customer_phone, customer_comment, reserve_for_24h, total, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		order.Id, order.CustomerName, order.CustomerPhone, order.CustomerComment,
		order.ReserveFor24h, order.Total, order.Status, order.CreatedAt)
	if err != nil {
		o.log.Error("CreateOrder", zap.String("id", order.Id), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

// CreateOrderItems writes all line items in a single statement.
func (o *OrderRepo) CreateOrderItems(ctx context.Context, items []models.OrderItem_db) (err error) {
	if len(items) == 0 {
		return
	}
	values := make([]string, 0, len(items))
	queryParams := make([]any, 0, len(items)*5)
	count := 0
	for _, it := range items {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", count+1, count+2, count+3, count+4, count+5))
		count = count + 5
		queryParams = append(queryParams, it.OrderId, it.ProductId, it.ProductName, it.ProductPrice, it.Quantity)
	}
	query := "INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity) VALUES " + strings.Join(values, ", ")
	_, err = o.db.ExecContext(ctx, query, queryParams...)
	if err != nil {
		o.log.Error("CreateOrderItems", zap.String("orderId", items[0].OrderId), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

func (o *OrderRepo) UpdateOrderStatus(ctx context.Context, orderId string, status string) (err error) {
	_, err = o.db.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, orderId)
	if err != nil {
		o.log.Error("UpdateOrderStatus", zap.String("id", orderId), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}
