package product

import (
	"context"
	"fmt"

	"sushi-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Product, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, input UpsertInput) (*Product, error)
	Update(ctx context.Context, id uint, input UpsertInput) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.GetProducts(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func validateInput(input UpsertInput) error {
	if input.NameRu == "" {
		return fmt.Errorf("%w: name_ru is required", ErrValidation)
	}
	if input.CategoryID == 0 {
		return fmt.Errorf("%w: categoryId is required", ErrValidation)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	return nil
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id uint, input UpsertInput) (*Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(zap.Uint("product_id", id))

	if err := s.repo.Disable(ctx, id); err != nil {
		return err
	}

	log.Info("product disabled")
	return nil
}
