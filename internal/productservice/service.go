// Package productservice manages business logic layer of products.
package productservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-vendo/vending-machine/internal/domain"
)

// Repo provides data access layer interface needed by product service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package productservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateProductParams) (domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Product, error)
	Update(ctx context.Context, arg domain.UpdateProductParams) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Service facilitates product service layer logic.
type Service struct {
	repo Repo
}

// New returns product service struct to manage product business logic.
func New(pr Repo) *Service {
	return &Service{repo: pr}
}

// Create creates and returns a product for the given seller.
func (s *Service) Create(ctx context.Context, arg domain.CreateProductParams) (domain.Product, error) {
	product, err := s.repo.Create(ctx, arg)
	if err != nil {
		return product, err
	}

	return product, nil
}

// Get returns the product with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return product, err
	}

	return product, nil
}

// List returns one page of products.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Product, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Service) checkSeller(ctx context.Context, seller string, id int64) error {
	l := zerolog.Ctx(ctx)

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if product.Seller != seller {
		l.Warn().Str("seller", seller).Int64("product_id", id).Msg(domain.ErrProductSellerMismatch.Error())
		return domain.ErrProductSellerMismatch
	}

	return nil
}

// Update changes the product if it belongs to the given seller.
func (s *Service) Update(ctx context.Context, seller string, arg domain.UpdateProductParams) (domain.Product, error) {
	if err := s.checkSeller(ctx, seller, arg.ID); err != nil {
		return domain.Product{}, err
	}

	product, err := s.repo.Update(ctx, arg)
	if err != nil {
		return product, err
	}

	return product, nil
}

// Delete removes the product if it belongs to the given seller.
func (s *Service) Delete(ctx context.Context, seller string, id int64) error {
	if err := s.checkSeller(ctx, seller, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
