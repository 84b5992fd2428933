package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"beautyStore/models"

	"go.uber.org/zap"
)

const brandColumns = "id, slug, name, logo, sort_order, created_at"

type BrandRepository interface {
	ListBrands(ctx context.Context) (brands []models.Brand_db, err error)
	CreateBrand(ctx context.Context, patch models.RowPatch) (created models.Brand_db, err error)
	UpdateBrand(ctx context.Context, id int64, patch models.RowPatch) (err error)
	DeleteBrand(ctx context.Context, id int64) (err error)
}

type BrandRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewBrandRepository(conn *sql.DB, log *zap.Logger) (*BrandRepo, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &BrandRepo{
		db:  conn,
		log: orNop(log).Named("brands"),
	}, nil
}

func scanBrand(row scanner) (b models.Brand_db, err error) {
	err = row.Scan(&b.Id, &b.Slug, &b.Name, &b.Logo, &b.SortOrder, &b.CreatedAt)
	return
}

func (b *BrandRepo) ListBrands(ctx context.Context) (brands []models.Brand_db, err error) {
	rows, e := b.db.QueryContext(ctx, "SELECT "+brandColumns+" FROM brands ORDER BY sort_order ASC, id ASC")
	if e != nil {
		b.log.Error("ListBrands[1]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
		return
	}
	defer rows.Close()
	for rows.Next() {
		brand, e := scanBrand(rows)
		if e != nil {
			b.log.Error("ListBrands[2]", zap.Error(e))
			err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
			return
		}
		brands = append(brands, brand)
	}
	if e := rows.Err(); e != nil {
		b.log.Error("ListBrands[3]", zap.Error(e))
		err = fmt.Errorf("%w: %v", models.ErrRemoteRead, e)
	}
	return
}

func (b *BrandRepo) CreateBrand(ctx context.Context, patch models.RowPatch) (created models.Brand_db, err error) {
	if patch.Len() == 0 {
		err = models.ErrBadRequest
		return
	}
	query, params := buildInsert("brands", patch, brandColumns)
	created, err = scanBrand(b.db.QueryRowContext(ctx, query, params...))
	if err != nil {
		b.log.Error("CreateBrand", zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

func (b *BrandRepo) UpdateBrand(ctx context.Context, id int64, patch models.RowPatch) (err error) {
	if patch.Len() == 0 {
		return
	}
	query, params := buildUpdate("brands", patch, "id", id)
	_, err = b.db.ExecContext(ctx, query, params...)
	if err != nil {
		b.log.Error("UpdateBrand", zap.Int64("id", id), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}

func (b *BrandRepo) DeleteBrand(ctx context.Context, id int64) (err error) {
	_, err = b.db.ExecContext(ctx, "DELETE FROM brands WHERE id = $1", id)
	if err != nil {
		b.log.Error("DeleteBrand", zap.Int64("id", id), zap.Error(err))
		err = fmt.Errorf("%w: %v", models.ErrRemoteWrite, err)
	}
	return
}
