package category

import (
	"context"
	"fmt"

	"sushi-be/internal/utils"
)

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Menu(ctx context.Context) ([]*MenuCategory, error)
	Create(ctx context.Context, input UpsertInput) (*Category, error)
	Update(ctx context.Context, id uint, input UpsertInput) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.GetCategories(ctx)
}

func (s *service) Menu(ctx context.Context) ([]*MenuCategory, error) {
	return s.repo.GetMenu(ctx)
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*Category, error) {
	if input.NameRu == "" {
		return nil, fmt.Errorf("%w: name_ru is required", ErrValidation)
	}
	if input.Slug == "" {
		input.Slug = utils.Slugify(firstNonEmpty(input.NameEn, input.NameRu))
	}
	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id uint, input UpsertInput) (*Category, error) {
	if input.NameRu == "" {
		return nil, fmt.Errorf("%w: name_ru is required", ErrValidation)
	}
	if input.Slug == "" {
		input.Slug = utils.Slugify(firstNonEmpty(input.NameEn, input.NameRu))
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
