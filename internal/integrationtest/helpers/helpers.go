// Package helpers provides shared db seeding helpers for integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/internal/productrepo"
	"github.com/go-vendo/vending-machine/internal/userrepo"
	"github.com/go-vendo/vending-machine/internal/walletrepo"
	"github.com/go-vendo/vending-machine/pkg/dbpkg"
	"github.com/go-vendo/vending-machine/pkg/passpkg"
	"github.com/go-vendo/vending-machine/pkg/randompkg"
)

// SeedUser creates a random user with the given role.
func SeedUser(t *testing.T, db dbpkg.SQLInterface, role string) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		Role:           role,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewRepoPGS(db)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedBuyerWithDeposit creates a random buyer holding the given balance.
func SeedBuyerWithDeposit(t *testing.T, db dbpkg.SQLInterface, deposit int64) domain.User {
	t.Helper()

	buyer := SeedUser(t, db, domain.RoleBuyer)

	walletRepo := walletrepo.NewTxRepoPGS(db)

	buyer, err := walletRepo.AddDeposit(context.Background(), deposit, buyer.Username)
	if err != nil {
		t.Fatalf("walletRepo.AddDeposit(context.Background(), %v, %v) returned error: %v",
			deposit, buyer.Username, err)
	}

	return buyer
}

// SeedProduct creates a product with the given price and stock for the seller.
func SeedProduct(t *testing.T, db dbpkg.SQLInterface, seller string, price, stock int64) domain.Product {
	t.Helper()

	arg := domain.CreateProductParams{
		Name:   randompkg.String(8),
		Seller: seller,
		Price:  price,
		Stock:  stock,
	}

	productRepo := productrepo.NewRepoPGS(db)

	product, err := productRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("productRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return product
}
