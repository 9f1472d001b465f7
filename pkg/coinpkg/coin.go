// Package coinpkg provides the machine's coin denominations and change-making.
package coinpkg

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Denominations holds all coin values accepted by the machine in cents.
//
// The descending order is significant: MakeChange walks it from the largest
// coin down.
var Denominations = []int64{100, 50, 20, 10, 5}

// IsValid returns true if the coin is an accepted denomination.
func IsValid(coin int64) bool {
	for _, d := range Denominations {
		if d == coin {
			return true
		}
	}

	return false
}

// Sum returns the total value of the given coins.
func Sum(coins []int64) int64 {
	var total int64
	for _, c := range coins {
		total += c
	}

	return total
}

// ValidDenomination validates whether a bound field is an accepted coin.
var ValidDenomination validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(int64); ok {
		return IsValid(c)
	}

	return false
}

// ValidPrice validates whether a bound field is a payable price.
//
// Prices must be positive multiples of the smallest coin so that any
// remaining balance is always returnable as change.
var ValidPrice validator.Func = func(fl validator.FieldLevel) bool {
	if p, ok := fl.Field().Interface().(int64); ok {
		return p > 0 && p%Denominations[len(Denominations)-1] == 0
	}

	return false
}

// Change maps a coin denomination to the number of coins returned.
type Change map[int64]int64

// Total returns the monetary value of the change.
func (c Change) Total() int64 {
	var total int64
	for denomination, count := range c {
		total += denomination * count
	}

	return total
}

// Count returns the number of coins in the change.
func (c Change) Count() int64 {
	var count int64
	for _, n := range c {
		count += n
	}

	return count
}

// UnrepresentableAmountError indicates an amount that cannot be decomposed
// into the machine's denominations. It means value entered the system that
// did not pass through coin validation.
type UnrepresentableAmountError struct {
	Amount    int64
	Remainder int64
}

func (e UnrepresentableAmountError) Error() string {
	return fmt.Sprintf("amount %d cannot be represented in coins: remainder %d", e.Amount, e.Remainder)
}

// MakeChange decomposes amount into the smallest possible number of coins.
//
// It walks Denominations from the largest coin down, taking as many of each
// as fit. Every amount that is a multiple of the smallest coin decomposes
// exactly; any other amount returns UnrepresentableAmountError rather than
// silently dropping the remainder.
func MakeChange(amount int64) (Change, error) {
	if amount < 0 {
		return nil, UnrepresentableAmountError{Amount: amount, Remainder: amount}
	}

	change := Change{}
	remaining := amount

	for _, denomination := range Denominations {
		count := remaining / denomination
		if count > 0 {
			change[denomination] = count
			remaining -= count * denomination
		}
	}

	if remaining != 0 {
		return nil, UnrepresentableAmountError{Amount: amount, Remainder: remaining}
	}

	return change, nil
}
