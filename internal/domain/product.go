package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProductNotFound indicates that the product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductSellerMismatch indicates that the user does not own the product.
	ErrProductSellerMismatch = errors.New("product belongs to another seller")
	// ErrSellerNotFound indicates that the seller for the product is not found.
	ErrSellerNotFound = errors.New("seller not found")
	// ErrInvalidPrice indicates a price that is not a positive multiple of the smallest coin.
	ErrInvalidPrice = errors.New("price must be a positive multiple of 5")
)

// Product holds a catalog slot: unit price and remaining stock.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Seller    string    `json:"seller"`
	Price     int64     `json:"price"`
	Stock     int64     `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductParams is the input data to create a product.
type CreateProductParams struct {
	Name   string `json:"name"`
	Seller string `json:"seller"`
	Price  int64  `json:"price"`
	Stock  int64  `json:"stock"`
}

// UpdateProductParams is the input data to update a product's price and stock.
type UpdateProductParams struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
}

// OutOfStockError indicates a purchase quantity exceeding the remaining stock.
type OutOfStockError struct {
	Available int64
	Requested int64
}

func (e OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %d available, %d requested", e.Available, e.Requested)
}
