package product

import (
	"context"
	"database/sql"

	"github.com/cocomo/secondhand-market/constant"
	"github.com/cocomo/secondhand-market/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	Insert(ctx context.Context, p *model.Product) (uint64, error)
	GetByPdNumTx(ctx context.Context, tx *sqlx.Tx, pdNum string) (*model.Product, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error)
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, productID uint64, status constant.ProductStatus) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	productColumns = "id, pd_num, user_id, name, image, price, detail, place, category, status, created_at"

	insertProductQuery = "INSERT INTO product (pd_num, user_id, name, image, price, detail, place, category, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())"

	// Row lock: the product is the shared resource two orders can race over.
	getProductForUpdate     = "SELECT " + productColumns + " FROM product WHERE pd_num = ? FOR UPDATE"
	getProductByIDForUpdate = "SELECT " + productColumns + " FROM product WHERE id = ? FOR UPDATE"
	getProductByID          = "SELECT " + productColumns + " FROM product WHERE id = ?"

	updateProductStatusQuery = "UPDATE product SET status = ? WHERE id = ?"
)

func (r *SQL) Insert(ctx context.Context, p *model.Product) (uint64, error) {
	res, err := r.conn.ExecContext(ctx, insertProductQuery,
		p.PdNum, p.UserID, p.Name, p.Image, p.Price, p.Detail, p.Place, p.Category, p.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByPdNumTx(ctx context.Context, tx *sqlx.Tx, pdNum string) (*model.Product, error) {
	var p model.Product
	if err := tx.QueryRowxContext(ctx, getProductForUpdate, pdNum).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Product, error) {
	var p model.Product
	if err := tx.QueryRowxContext(ctx, getProductByIDForUpdate, id).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := r.conn.QueryRowxContext(ctx, getProductByID, id).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, productID uint64, status constant.ProductStatus) error {
	_, err := tx.ExecContext(ctx, updateProductStatusQuery, status, productID)
	return err
}
