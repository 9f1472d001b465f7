// Package walletrepo manages repository layer of coin deposits and purchases.
package walletrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/pkg/dbpkg"
	"github.com/go-vendo/vending-machine/pkg/errorspkg"
)

// RepoPGS facilitates wallet repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns wallet RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns wallet RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const addDepositQuery = `
UPDATE users
SET deposit = deposit + $1
WHERE username = $2
RETURNING username, role, full_name, email, deposit, created_at
`

// AddDeposit adds the amount to the user's deposit and returns the changed user.
func (r *RepoPGS) AddDeposit(ctx context.Context, amount int64, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addDepositQuery, amount, username)

	var u domain.User

	err := row.Scan(
		&u.Username,
		&u.Role,
		&u.FullName,
		&u.Email,
		&u.Deposit,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const resetDepositQuery = `
WITH old AS (
	SELECT deposit FROM users WHERE username = $1 FOR UPDATE
)
UPDATE users
SET deposit = 0
WHERE username = $1
RETURNING (SELECT deposit FROM old)
`

// ResetDeposit sets the user's deposit to 0 and returns the previous balance.
func (r *RepoPGS) ResetDeposit(ctx context.Context, username string) (int64, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, resetDepositQuery, username)

	var previous int64

	err := row.Scan(&previous)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}

		return 0, errorspkg.ErrInternal
	}

	return previous, nil
}

const lockProductQuery = `
SELECT id, name, seller, price, stock, created_at
FROM products
WHERE id = $1
FOR UPDATE
`

const takeStockQuery = `
UPDATE products
SET stock = stock - $1
WHERE id = $2
RETURNING stock
`

const lockDepositQuery = `
SELECT deposit
FROM users
WHERE username = $1
FOR UPDATE
`

const spendDepositQuery = `
UPDATE users
SET deposit = 0
WHERE username = $1
`

const createPurchaseQuery = `
INSERT INTO
    purchases (username, product_id, quantity, total_cost)
VALUES
    ($1, $2, $3, $4)
RETURNING id, username, product_id, quantity, total_cost, created_at
`

// PurchaseTx sells the product to the buyer within a single db transaction.
//
// It reserves the stock, debits the deposit, zeroes the remaining balance
// as change due, and records the purchase. Any failure rolls the whole
// transaction back, so a reserved stock decrement is restored when the
// debit fails. Rows are always locked in product, user order.
func (r *RepoPGS) PurchaseTx(ctx context.Context, arg domain.CreatePurchaseParams) (domain.PurchaseTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.PurchaseTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	var p domain.Product

	err = tx.QueryRowContext(ctx, lockProductQuery, arg.ProductID).Scan(
		&p.ID,
		&p.Name,
		&p.Seller,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return result, domain.ErrProductNotFound
		}

		l.Error().Err(err).Send()

		return result, errorspkg.ErrInternal
	}

	if arg.Quantity > p.Stock {
		return result, domain.OutOfStockError{Available: p.Stock, Requested: arg.Quantity}
	}

	if err = tx.QueryRowContext(ctx, takeStockQuery, arg.Quantity, arg.ProductID).Scan(&p.Stock); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	var deposit int64

	err = tx.QueryRowContext(ctx, lockDepositQuery, arg.Username).Scan(&deposit)
	if err != nil {
		if err == sql.ErrNoRows {
			return result, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return result, errorspkg.ErrInternal
	}

	totalCost := p.Price * arg.Quantity
	if deposit < totalCost {
		return result, domain.InsufficientFundsError{Available: deposit, Requested: totalCost}
	}

	if _, err = tx.ExecContext(ctx, spendDepositQuery, arg.Username); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	err = tx.QueryRowContext(ctx, createPurchaseQuery,
		arg.Username,
		arg.ProductID,
		arg.Quantity,
		totalCost,
	).Scan(
		&result.Purchase.ID,
		&result.Purchase.Username,
		&result.Purchase.ProductID,
		&result.Purchase.Quantity,
		&result.Purchase.TotalCost,
		&result.Purchase.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.Product = p
	result.ChangeDue = deposit - totalCost

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}
