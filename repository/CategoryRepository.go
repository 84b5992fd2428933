package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"beautyStore/models"

	"go.uber.org/zap"
)

const categoryColumns = "id, slug, name, sort_order, created_at"

type CategoryRepository interface {
	ListCategories(ctx context.Context) (cats []models.Category_db, err error)
	CreateCategory(ctx context.Context, patch models.RowPatch) (created models.Category_db, err error)
	UpdateCategory(ctx context.Context, id int64, patch models.RowPatch) (err error)
	DeleteCategory(ctx context.Context, id int64) (err error)
}

type CategoryRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewCategoryRepository(conn *sql.DB, log *zap.Logger) (*CategoryRepo, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &CategoryRepo{
		db:  conn,
		log: orNop(log).Named("categories"),
	}, nil
}

func scanCategory(row scanner) (c models.Category_db, err error) {
	err = row.Scan(&c.Id, &c.Slug, &c.Name, &c.SortOrder, &c.CreatedAt)
	return
}

// ListCategories orders by sort_order; equal sort orders keep insertion order.
func (c *CategoryRepo) ListCategories(ctx context.Context) (cats []models.Category_db, err error) {
	rows, e := c.db.QueryContext(ctx, "SELECT "+categoryColumns+" FROM categories ORDER BY sort_order ASC, id ASC")
	if e != nil {
		c.log.Error("ListCategories[1]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
		return
	}
	defer rows.Close()
	for rows.Next() {
		cat, e := scanCategory(rows)
		if e != nil {
			c.log.Error("ListCategories[2]", zap.Error(e))
			err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
			return
		}
		cats = append(cats, cat)
	}
	if e := rows.Err(); e != nil {
		c.log.Error("ListCategories[3]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
	}
	return
}

func (c *CategoryRepo) CreateCategory(ctx context.Context, patch models.RowPatch) (created models.Category_db, err error) {
	if patch.Len() == 0 {
		err = models.ErrBadRequest
		return
	}
	query, params := buildInsert("categories", patch, categoryColumns)
	created, err = scanCategory(c.db.QueryRowContext(ctx, query, params...))
	if err != nil {
		c.log.Error("CreateCategory", zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

func (c *CategoryRepo) UpdateCategory(ctx context.Context, id int64, patch models.RowPatch) (err error) {
	if patch.Len() == 0 {
		return
	}
	query, params := buildUpdate("categories", patch, "id", id)
	_, err = c.db.ExecContext(ctx, query, params...)
	if err != nil {
		c.log.Error("UpdateCategory", zap.Int64("id", id), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

// DeleteCategory does not touch products that still name the category.
func (c *CategoryRepo) DeleteCategory(ctx context.Context, id int64) (err error) {
	_, err = c.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		c.log.Error("DeleteCategory", zap.Int64("id", id), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}
