package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"beautyStore/models"

	"go.uber.org/zap"
)

const productColumns = "id, name, category, brand, price, old_price, image, images, badge, in_stock, " +
	"stock_quantity, description, full_description, ingredients, how_to_use, rating, review_count, created_at"

type ProductRepository interface {
	ListProducts(ctx context.Context) (prods []models.Product_db, err error)
	CreateProduct(ctx context.Context, patch models.RowPatch) (created models.Product_db, err error)
	UpdateProduct(ctx context.Context, id int64, patch models.RowPatch) (err error)
	DeleteProduct(ctx context.Context, id int64) (err error)
}

type ProductRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewProductRepository(conn *sql.DB, log *zap.Logger) (*ProductRepo, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &ProductRepo{
		db:  conn,
		log: orNop(log).Named("products"),
	}, nil
}

func scanProduct(row scanner) (p models.Product_db, err error) {
	err = row.Scan(&p.Id, &p.Name, &p.Category, &p.Brand, &p.Price, &p.OldPrice,
		&p.Image, &p.Images, &p.Badge, &p.InStock, &p.StockQuantity, &p.Description,
		&p.FullDescription, &p.Ingredients, &p.HowToUse, &p.Rating, &p.ReviewCount, &p.CreatedAt)
	return
}

func (p *ProductRepo) ListProducts(ctx context.Context) (prods []models.Product_db, err error) {
	rows, e := p.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
	if e != nil {
		p.log.Error("ListProducts[1]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
		return
	}
	defer rows.Close()
	for rows.Next() {
		prod, e := scanProduct(rows)
		if e != nil {
			p.log.Error("ListProducts[2]", zap.Error(e))
			err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
			return
		}
		prods = append(prods, prod)
	}
	if e := rows.Err(); e != nil {
		p.log.Error("ListProducts[3]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
	}
	return
}

func (p *ProductRepo) CreateProduct(ctx context.Context, patch models.RowPatch) (created models.Product_db, err error) {
	if patch.Len() == 0 {
		err = models.ErrBadRequest
		return
	}
	query, params := buildInsert("products", patch, productColumns)
	created, err = scanProduct(p.db.QueryRowContext(ctx, query, params...))
	if err != nil {
		p.log.Error("CreateProduct", zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

func (p *ProductRepo) UpdateProduct(ctx context.Context, id int64, patch models.RowPatch) (err error) {
	if patch.Len() == 0 {
		return
	}
	query, params := buildUpdate("products", patch, "id", id)
	_, err = p.db.ExecContext(ctx, query, params...)
	if err != nil {
		p.log.Error("UpdateProduct", zap.Int64("id", id), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

func (p *ProductRepo) DeleteProduct(ctx context.Context, id int64) (err error) {
	_, err = p.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err == nil {
		return
	}
	if isForeignKeyViolation(err) {
		p.log.Warn("DeleteProduct: product is referenced by order items", zap.Int64("id", id))
		err = fmt.Errorf("%w: product %d", models.ErrProductInUse, id)
		return
	}
	p.log.Error("DeleteProduct", zap.Int64("id", id), zap.Error(err))
	err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	return
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
