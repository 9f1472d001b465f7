// Package productrepo manages repository layer of products.
package productrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/pkg/dbpkg"
	"github.com/go-vendo/vending-machine/pkg/errorspkg"
)

// RepoPGS facilitates product repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns product RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    products (name, seller, price, stock)
VALUES
    ($1, $2, $3, $4)
RETURNING id, name, seller, price, stock, created_at
`

// Create creates the product and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateProductParams) (domain.Product, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.Name, arg.Seller, arg.Price, arg.Stock)

	var p domain.Product

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Seller,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "products_seller_fkey":
				return p, domain.ErrSellerNotFound
			case "products_price_check":
				return p, domain.ErrInvalidPrice
			}
		}

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

const getQuery = `
SELECT
	id, name, seller, price, stock, created_at
FROM products
WHERE id = $1
`

// Get returns the product with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Product, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var p domain.Product

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Seller,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrProductNotFound
		}

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

const listQuery = `
SELECT
	id, name, seller, price, stock, created_at
FROM products
ORDER BY id
LIMIT $1 OFFSET $2
`

// List returns the specified number of products.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Product, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Product{}

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Seller, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE products
SET name = $1, price = $2, stock = $3
WHERE id = $4
RETURNING id, name, seller, price, stock, created_at
`

// Update changes the product's name, price and stock and returns the changed product.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateProductParams) (domain.Product, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, arg.Name, arg.Price, arg.Stock, arg.ID)

	var p domain.Product

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Seller,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return p, domain.ErrProductNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "products_price_check" {
				return p, domain.ErrInvalidPrice
			}
		}

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

const deleteQuery = `
DELETE FROM products
WHERE id = $1
`

// Delete removes the product with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, deleteQuery, id)
	return err
}
