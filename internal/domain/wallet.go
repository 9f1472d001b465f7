package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-vendo/vending-machine/pkg/coinpkg"
)

// ErrInvalidQuantity indicates a purchase quantity below 1.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// InvalidDenominationError indicates that a deposit contained coins the
// machine does not accept. It lists every offending value so the caller can
// return the whole deposit.
type InvalidDenominationError struct {
	Coins []int64
}

func (e InvalidDenominationError) Error() string {
	values := make([]string, len(e.Coins))
	for i, c := range e.Coins {
		values[i] = strconv.FormatInt(c, 10)
	}

	return "invalid coins: " + strings.Join(values, ", ")
}

// InsufficientFundsError indicates a purchase exceeding the deposited balance.
type InsufficientFundsError struct {
	Available int64
	Requested int64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %d available, %d requested", e.Available, e.Requested)
}

// Purchase holds a committed purchase record.
type Purchase struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	TotalCost int64     `json:"total_cost"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePurchaseParams is the input data for the purchase transaction.
type CreatePurchaseParams struct {
	Username  string `json:"username"`
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PurchaseTxResult is the result of the purchase transaction.
//
// ChangeDue is the buyer's entire balance remaining after the debit: the
// machine returns it in full and the deposit ends at zero.
type PurchaseTxResult struct {
	Purchase  Purchase `json:"purchase"`
	Product   Product  `json:"product"`
	ChangeDue int64    `json:"change_due"`
}

// Receipt is returned to the buyer after a successful purchase. It is never
// persisted.
type Receipt struct {
	Product   Product        `json:"product"`
	Quantity  int64          `json:"quantity"`
	UnitPrice int64          `json:"unit_price"`
	TotalCost int64          `json:"total_cost"`
	Change    coinpkg.Change `json:"change"`
}

// DepositResult is returned to the buyer after a successful deposit.
type DepositResult struct {
	TotalDeposited int64 `json:"total_deposited"`
	Balance        int64 `json:"balance"`
}
