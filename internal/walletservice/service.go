// Package walletservice manages business logic layer of coin deposits and purchases.
package walletservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-vendo/vending-machine/internal/domain"
	"github.com/go-vendo/vending-machine/pkg/coinpkg"
	"github.com/go-vendo/vending-machine/pkg/errorspkg"
)

// Repo provides data access layer interface needed by wallet service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package walletservice
type Repo interface {
	AddDeposit(ctx context.Context, amount int64, username string) (domain.User, error)
	ResetDeposit(ctx context.Context, username string) (int64, error)
	PurchaseTx(ctx context.Context, arg domain.CreatePurchaseParams) (domain.PurchaseTxResult, error)
}

// Service facilitates wallet service layer logic.
type Service struct {
	repo Repo
}

// New returns wallet service struct to manage wallet business logic.
func New(wr Repo) *Service {
	return &Service{
		repo: wr,
	}
}

// Deposit validates the coins and adds their total to the user's balance.
//
// A deposit containing any unaccepted coin is rejected as a whole and the
// balance is left untouched.
func (s *Service) Deposit(ctx context.Context, username string, coins []int64) (domain.DepositResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DepositResult

	var invalid []int64

	for _, c := range coins {
		if !coinpkg.IsValid(c) {
			invalid = append(invalid, c)
		}
	}

	if len(coins) == 0 || len(invalid) > 0 {
		err := domain.InvalidDenominationError{Coins: invalid}
		l.Info().Err(err).Send()

		return result, err
	}

	total := coinpkg.Sum(coins)

	user, err := s.repo.AddDeposit(ctx, total, username)
	if err != nil {
		return result, err
	}

	result = domain.DepositResult{
		TotalDeposited: total,
		Balance:        user.Deposit,
	}

	return result, nil
}

// Buy purchases the product against the user's balance and returns a receipt.
//
// On success the buyer's entire remaining balance comes back as change and
// the deposit ends at zero.
func (s *Service) Buy(ctx context.Context, username string, productID, quantity int64) (domain.Receipt, error) {
	l := zerolog.Ctx(ctx)

	if quantity < 1 {
		l.Info().Err(domain.ErrInvalidQuantity).Send()
		return domain.Receipt{}, domain.ErrInvalidQuantity
	}

	arg := domain.CreatePurchaseParams{
		Username:  username,
		ProductID: productID,
		Quantity:  quantity,
	}

	result, err := s.repo.PurchaseTx(ctx, arg)
	if err != nil {
		return domain.Receipt{}, err
	}

	change, err := coinpkg.MakeChange(result.ChangeDue)
	if err != nil {
		// Value that cannot come back out as coins should never have been
		// accepted. The purchase is committed at this point, so treat it
		// as a data-integrity fault.
		l.Error().Err(err).Int64("change_due", result.ChangeDue).Send()

		return domain.Receipt{}, errorspkg.ErrInternal
	}

	receipt := domain.Receipt{
		Product:   result.Product,
		Quantity:  result.Purchase.Quantity,
		UnitPrice: result.Product.Price,
		TotalCost: result.Purchase.TotalCost,
		Change:    change,
	}

	return receipt, nil
}

// Reset zeroes the user's balance and returns the previous one.
func (s *Service) Reset(ctx context.Context, username string) (int64, error) {
	previous, err := s.repo.ResetDeposit(ctx, username)
	if err != nil {
		return 0, err
	}

	return previous, nil
}
