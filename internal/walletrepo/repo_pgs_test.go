package walletrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/internal/productrepo"
	"github.com/go-vendo/vending-machine/internal/userrepo"
	"github.com/go-vendo/vending-machine/pkg/configpkg"
	"github.com/go-vendo/vending-machine/pkg/passpkg"
	"github.com/go-vendo/vending-machine/pkg/randompkg"

	_ "github.com/lib/pq"
)

var (
	testRepo        *RepoPGS
	testUserRepo    *userrepo.RepoPGS
	testProductRepo *productrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testUserRepo = userrepo.NewRepoPGS(testDB)
	testProductRepo = productrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T, role string) domain.User {
	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		Role:           role,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	}

	user, err := testUserRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, user)

	return user
}

func createProduct(t *testing.T, seller domain.User, price, stock int64) domain.Product {
	arg := domain.CreateProductParams{
		Name:   randompkg.String(8),
		Seller: seller.Username,
		Price:  price,
		Stock:  stock,
	}

	product, err := testProductRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, product)

	return product
}

func deposit(t *testing.T, username string, amount int64) {
	user, err := testRepo.AddDeposit(context.Background(), amount, username)
	require.NoError(t, err)
	require.Equal(t, amount, user.Deposit)
}

func TestAddDeposit(t *testing.T) {
	buyer := createRandomUser(t, domain.RoleBuyer)

	user, err := testRepo.AddDeposit(context.Background(), 80, buyer.Username)
	require.NoError(t, err)
	require.Equal(t, int64(80), user.Deposit)

	user, err = testRepo.AddDeposit(context.Background(), 100, buyer.Username)
	require.NoError(t, err)
	require.Equal(t, int64(180), user.Deposit)
}

func TestAddDepositUserNotFound(t *testing.T) {
	user, err := testRepo.AddDeposit(context.Background(), 80, "non-existent")
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
	require.Empty(t, user)
}

func TestResetDeposit(t *testing.T) {
	buyer := createRandomUser(t, domain.RoleBuyer)
	deposit(t, buyer.Username, 30)

	previous, err := testRepo.ResetDeposit(context.Background(), buyer.Username)
	require.NoError(t, err)
	require.Equal(t, int64(30), previous)

	user, err := testUserRepo.Get(context.Background(), buyer.Username)
	require.NoError(t, err)
	require.Zero(t, user.Deposit)
}

func TestResetDepositUserNotFound(t *testing.T) {
	previous, err := testRepo.ResetDeposit(context.Background(), "non-existent")
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
	require.Zero(t, previous)
}

func TestPurchaseTx(t *testing.T) {
	seller := createRandomUser(t, domain.RoleSeller)
	buyer := createRandomUser(t, domain.RoleBuyer)
	product := createProduct(t, seller, 50, 3)

	deposit(t, buyer.Username, 80)

	arg := domain.CreatePurchaseParams{
		Username:  buyer.Username,
		ProductID: product.ID,
		Quantity:  1,
	}

	result, err := testRepo.PurchaseTx(context.Background(), arg)
	require.NoError(t, err)

	require.Equal(t, buyer.Username, result.Purchase.Username)
	require.Equal(t, product.ID, result.Purchase.ProductID)
	require.Equal(t, int64(1), result.Purchase.Quantity)
	require.Equal(t, int64(50), result.Purchase.TotalCost)
	require.NotZero(t, result.Purchase.ID)
	require.NotZero(t, result.Purchase.CreatedAt)

	require.Equal(t, int64(2), result.Product.Stock)
	require.Equal(t, int64(30), result.ChangeDue)

	// The entire remaining balance is returned as change.
	user, err := testUserRepo.Get(context.Background(), buyer.Username)
	require.NoError(t, err)
	require.Zero(t, user.Deposit)

	got, err := testProductRepo.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Stock)
}

func TestPurchaseTxOutOfStock(t *testing.T) {
	seller := createRandomUser(t, domain.RoleSeller)
	buyer := createRandomUser(t, domain.RoleBuyer)
	product := createProduct(t, seller, 5, 2)

	deposit(t, buyer.Username, 100)

	arg := domain.CreatePurchaseParams{
		Username:  buyer.Username,
		ProductID: product.ID,
		Quantity:  5,
	}

	result, err := testRepo.PurchaseTx(context.Background(), arg)
	require.EqualError(t, err, domain.OutOfStockError{Available: 2, Requested: 5}.Error())
	require.Empty(t, result)

	// Nothing changed.
	user, err := testUserRepo.Get(context.Background(), buyer.Username)
	require.NoError(t, err)
	require.Equal(t, int64(100), user.Deposit)

	got, err := testProductRepo.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Stock)
}

func TestPurchaseTxInsufficientFunds(t *testing.T) {
	seller := createRandomUser(t, domain.RoleSeller)
	buyer := createRandomUser(t, domain.RoleBuyer)
	product := createProduct(t, seller, 100, 5)

	deposit(t, buyer.Username, 80)

	arg := domain.CreatePurchaseParams{
		Username:  buyer.Username,
		ProductID: product.ID,
		Quantity:  2,
	}

	result, err := testRepo.PurchaseTx(context.Background(), arg)
	require.EqualError(t, err, domain.InsufficientFundsError{Available: 80, Requested: 200}.Error())
	require.Empty(t, result)

	// The reserved stock decrement is rolled back.
	got, err := testProductRepo.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), got.Stock)

	user, err := testUserRepo.Get(context.Background(), buyer.Username)
	require.NoError(t, err)
	require.Equal(t, int64(80), user.Deposit)
}

func TestPurchaseTxProductNotFound(t *testing.T) {
	buyer := createRandomUser(t, domain.RoleBuyer)
	deposit(t, buyer.Username, 80)

	arg := domain.CreatePurchaseParams{
		Username:  buyer.Username,
		ProductID: 0,
		Quantity:  1,
	}

	result, err := testRepo.PurchaseTx(context.Background(), arg)
	require.EqualError(t, err, domain.ErrProductNotFound.Error())
	require.Empty(t, result)
}

func TestPurchaseTxUserNotFound(t *testing.T) {
	seller := createRandomUser(t, domain.RoleSeller)
	product := createProduct(t, seller, 5, 10)

	arg := domain.CreatePurchaseParams{
		Username:  "non-existent",
		ProductID: product.ID,
		Quantity:  1,
	}

	result, err := testRepo.PurchaseTx(context.Background(), arg)
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
	require.Empty(t, result)
}

func TestPurchaseTxConcurrent(t *testing.T) {
	seller := createRandomUser(t, domain.RoleSeller)
	product := createProduct(t, seller, 5, 5)

	n := 5
	errs := make(chan error)

	for i := 0; i < n; i++ {
		buyer := createRandomUser(t, domain.RoleBuyer)
		deposit(t, buyer.Username, 5)

		go func(username string) {
			_, err := testRepo.PurchaseTx(context.Background(), domain.CreatePurchaseParams{
				Username:  username,
				ProductID: product.ID,
				Quantity:  1,
			})

			errs <- err
		}(buyer.Username)
	}

	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	got, err := testProductRepo.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Zero(t, got.Stock)
}
