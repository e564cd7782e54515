package category

import (
	"context"
	"database/sql"
	"errors"

	"sushi-be/internal/logger"
	"sushi-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetMenu(ctx context.Context) ([]*MenuCategory, error)
	Create(ctx context.Context, input UpsertInput) (*Category, error)
	Update(ctx context.Context, id uint, input UpsertInput) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name_ru, name_en, name_uk, name_nl, slug
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		log.Error("db: failed to query categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.NameRu, &c.NameEn, &c.NameUk, &c.NameNl, &c.Slug); err != nil {
			log.Error("db: failed to scan category row", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

// GetMenu loads every category with its active products nested.
// One query, grouped in memory, so the menu stays a single round trip.
func (r *repository) GetMenu(ctx context.Context) ([]*MenuCategory, error) {
	log := logger.FromCtx(ctx)

	categories, err := r.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.id, p.category_id,
			p.name_ru, p.name_en, p.name_uk, p.name_nl,
			p.ingredients_ru, p.ingredients_en, p.ingredients_uk, p.ingredients_nl,
			p.price, p.image_url, p.is_popular, p.is_recommended, p.status
		FROM products p
		WHERE p.status = $1
		ORDER BY p.id ASC
	`, product.StatusActive)
	if err != nil {
		log.Error("db: failed to query menu products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	byCategory := make(map[uint][]*product.Product)
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID,
			&p.NameRu, &p.NameEn, &p.NameUk, &p.NameNl,
			&p.IngredientsRu, &p.IngredientsEn, &p.IngredientsUk, &p.IngredientsNl,
			&p.Price, &p.ImageURL, &p.IsPopular, &p.IsRecommended, &p.Status,
		); err != nil {
			log.Error("db: failed to scan menu product row", zap.Error(err))
			return nil, err
		}
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	menu := make([]*MenuCategory, 0, len(categories))
	for _, c := range categories {
		products := byCategory[c.ID]
		if products == nil {
			products = []*product.Product{}
		}
		menu = append(menu, &MenuCategory{Category: *c, Products: products})
	}

	return menu, nil
}

func (r *repository) Create(ctx context.Context, input UpsertInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("slug", input.Slug))

	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name_ru, name_en, name_uk, name_nl, slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name_ru, name_en, name_uk, name_nl, slug
	`, input.NameRu, input.NameEn, input.NameUk, input.NameNl, input.Slug).
		Scan(&c.ID, &c.NameRu, &c.NameEn, &c.NameUk, &c.NameNl, &c.Slug)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// categories_slug_key
			return nil, ErrSlugExists
		}
		log.Error("db: failed to insert category", zap.Error(err))
		return nil, err
	}

	log.Info("category created", zap.Uint("category_id", c.ID))
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpsertInput) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name_ru = $1, name_en = $2, name_uk = $3, name_nl = $4, slug = $5
		WHERE id = $6
		RETURNING id, name_ru, name_en, name_uk, name_nl, slug
	`, input.NameRu, input.NameEn, input.NameUk, input.NameNl, input.Slug, id).
		Scan(&c.ID, &c.NameRu, &c.NameEn, &c.NameUk, &c.NameNl, &c.Slug)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSlugExists
		}
		logger.FromCtx(ctx).Error("db: failed to update category", zap.Error(err))
		return nil, err
	}

	return &c, nil
}

// Delete removes a category. The FK from products is RESTRICT, so a
// category that still owns products is rejected instead of orphaning them.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrInUse
		}
		logger.FromCtx(ctx).Error("db: failed to delete category",
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
